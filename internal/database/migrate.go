package database

import (
	"context"
	"database/sql"
	"fmt"
)

// migrations holds the schema DDL in dependency order.  Every statement is
// idempotent (IF NOT EXISTS) so Migrate can run at every startup.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS companies (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name VARCHAR(190) NOT NULL,
		timezone VARCHAR(64) NOT NULL DEFAULT 'UTC',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_companies_name (name)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		company_id BIGINT UNSIGNED NOT NULL,
		email VARCHAR(190) NOT NULL,
		password_hash VARCHAR(100) NOT NULL,
		role ENUM('admin','manager','staff','customer') NOT NULL DEFAULT 'customer',
		is_active TINYINT(1) NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_users_email (email),
		KEY idx_users_company (company_id),
		CONSTRAINT fk_users_company FOREIGN KEY (company_id) REFERENCES companies (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		user_id BIGINT UNSIGNED NOT NULL,
		token_hash CHAR(64) NOT NULL,
		expires_at DATETIME NOT NULL,
		revoked_at DATETIME NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_refresh_hash (token_hash),
		KEY idx_refresh_user (user_id),
		CONSTRAINT fk_refresh_user FOREIGN KEY (user_id) REFERENCES users (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS boats (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		company_id BIGINT UNSIGNED NOT NULL,
		name VARCHAR(190) NOT NULL,
		description TEXT NULL,
		capacity INT UNSIGNED NOT NULL DEFAULT 0,
		litres_per_hour DECIMAL(8,2) NOT NULL DEFAULT 0,
		hourly_rate DECIMAL(10,2) NOT NULL DEFAULT 0,
		is_active TINYINT(1) NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_boats_company_name (company_id, name),
		CONSTRAINT fk_boats_company FOREIGN KEY (company_id) REFERENCES companies (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS bookings (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		company_id BIGINT UNSIGNED NOT NULL,
		boat_id BIGINT UNSIGNED NOT NULL,
		customer_id BIGINT UNSIGNED NULL,
		reference CHAR(36) NOT NULL,
		customer_name VARCHAR(190) NOT NULL,
		customer_email VARCHAR(190) NOT NULL,
		booking_date DATE NOT NULL,
		start_time TIME NOT NULL,
		end_time TIME NOT NULL,
		passengers INT UNSIGNED NOT NULL DEFAULT 1,
		package_type VARCHAR(32) NOT NULL DEFAULT 'none',
		status ENUM('pending_hold','confirmed','completed','cancelled','no_show') NOT NULL DEFAULT 'pending_hold',
		hold_until DATETIME NULL,
		total_amount DECIMAL(10,2) NOT NULL DEFAULT 0,
		notes TEXT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_bookings_reference (reference),
		KEY idx_bookings_boat_date (boat_id, booking_date),
		KEY idx_bookings_company_status (company_id, status),
		CONSTRAINT fk_bookings_company FOREIGN KEY (company_id) REFERENCES companies (id),
		CONSTRAINT fk_bookings_boat FOREIGN KEY (boat_id) REFERENCES boats (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS blocked_slots (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		company_id BIGINT UNSIGNED NOT NULL,
		boat_id BIGINT UNSIGNED NULL,
		slot_date DATE NOT NULL,
		start_time TIME NOT NULL,
		end_time TIME NOT NULL,
		reason VARCHAR(255) NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY idx_blocked_company_date (company_id, slot_date),
		CONSTRAINT fk_blocked_company FOREIGN KEY (company_id) REFERENCES companies (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS pricing_configs (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		company_id BIGINT UNSIGNED NOT NULL,
		fuel_price_per_litre DECIMAL(8,2) NOT NULL DEFAULT 0,
		drinks_per_person DECIMAL(8,2) NOT NULL DEFAULT 0,
		food_per_person DECIMAL(8,2) NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_pricing_company (company_id),
		CONSTRAINT fk_pricing_company FOREIGN KEY (company_id) REFERENCES companies (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS payment_transactions (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		company_id BIGINT UNSIGNED NOT NULL,
		booking_id BIGINT UNSIGNED NOT NULL,
		kind ENUM('deposit','full','refund') NOT NULL,
		amount DECIMAL(10,2) NOT NULL,
		status ENUM('succeeded','pending','failed') NOT NULL DEFAULT 'succeeded',
		provider_ref VARCHAR(190) NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY idx_payments_booking (booking_id),
		CONSTRAINT fk_payments_company FOREIGN KEY (company_id) REFERENCES companies (id),
		CONSTRAINT fk_payments_booking FOREIGN KEY (booking_id) REFERENCES bookings (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS notifications (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		company_id BIGINT UNSIGNED NOT NULL,
		user_id BIGINT UNSIGNED NOT NULL,
		kind VARCHAR(64) NOT NULL,
		message VARCHAR(500) NOT NULL,
		read_at DATETIME NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY idx_notifications_user (user_id, read_at),
		CONSTRAINT fk_notifications_company FOREIGN KEY (company_id) REFERENCES companies (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS waitlist (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		company_id BIGINT UNSIGNED NOT NULL,
		boat_id BIGINT UNSIGNED NOT NULL,
		customer_name VARCHAR(190) NOT NULL,
		customer_email VARCHAR(190) NOT NULL,
		slot_date DATE NOT NULL,
		start_time TIME NOT NULL,
		end_time TIME NOT NULL,
		passengers INT UNSIGNED NOT NULL DEFAULT 1,
		status ENUM('waiting','converted','expired') NOT NULL DEFAULT 'waiting',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY idx_waitlist_slot (company_id, boat_id, slot_date),
		CONSTRAINT fk_waitlist_company FOREIGN KEY (company_id) REFERENCES companies (id),
		CONSTRAINT fk_waitlist_boat FOREIGN KEY (boat_id) REFERENCES boats (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate applies the schema to the given database.  Statements run in
// order; the first failure aborts with the statement index in the error.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
