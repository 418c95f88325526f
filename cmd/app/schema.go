package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/sbilus/storefront-backend/internal/stock"
)

// schemaStatements create the hosted backend's tables and the stock procedure
// for local development databases. Every statement is idempotent.
var schemaStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS pgcrypto`,
	`CREATE TABLE IF NOT EXISTS categories (
		id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		name text NOT NULL,
		created_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		name text NOT NULL,
		description text,
		price numeric(10,2) NOT NULL,
		promotional_price numeric(10,2),
		images text[],
		sizes text[],
		category_id uuid REFERENCES categories(id),
		is_new boolean DEFAULT false,
		stock jsonb,
		weight numeric,
		height numeric,
		width numeric,
		length numeric,
		created_at timestamptz NOT NULL DEFAULT now(),
		updated_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS clients (
		id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		name text NOT NULL,
		email text NOT NULL,
		phone text,
		address text,
		city text,
		state text,
		zip_code text,
		cpf_cnpj text,
		created_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		client_id uuid NOT NULL REFERENCES clients(id),
		order_number text NOT NULL,
		total_amount numeric(10,2) NOT NULL,
		status text DEFAULT 'pending',
		created_at timestamptz NOT NULL DEFAULT now(),
		updated_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		order_id uuid NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		product_id uuid NOT NULL REFERENCES products(id),
		size text NOT NULL,
		quantity int NOT NULL,
		unit_price numeric(10,2) NOT NULL,
		total_price numeric(10,2) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS stock_movements (
		id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		product_id uuid NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		size text NOT NULL,
		movement_type text NOT NULL CHECK (movement_type IN ('in', 'out', 'adjustment')),
		quantity int NOT NULL,
		previous_stock int NOT NULL,
		new_stock int NOT NULL,
		reason text,
		created_at timestamptz DEFAULT now()
	)`,
	updateProductStockFunction,
}

// updateProductStockFunction rewrites a null or array-encoded stock column into
// a size->quantity object before the adjustment. Bare labels (from the stock
// array or the legacy sizes column) carry the default label quantity, the same
// units the catalog shows for them.
var updateProductStockFunction = fmt.Sprintf(`CREATE OR REPLACE FUNCTION update_product_stock(
		p_product_id uuid,
		p_size text,
		p_quantity int,
		p_movement_type text,
		p_reason text DEFAULT NULL
	) RETURNS boolean
	LANGUAGE plpgsql AS $$
	DECLARE
		v_stock jsonb;
		v_sizes text[];
		v_raw text;
		v_current int;
		v_new int;
	BEGIN
		SELECT stock, sizes INTO v_stock, v_sizes
		FROM products WHERE id = p_product_id FOR UPDATE;
		IF NOT FOUND THEN
			RETURN false;
		END IF;

		IF v_stock IS NULL OR jsonb_typeof(v_stock) = 'null' THEN
			SELECT COALESCE(jsonb_object_agg(btrim(s), %[1]d), '{}'::jsonb) INTO v_stock
			FROM unnest(COALESCE(v_sizes, '{}'::text[])) AS s
			WHERE btrim(s) <> '';
		ELSIF jsonb_typeof(v_stock) = 'array' THEN
			SELECT COALESCE(jsonb_object_agg(btrim(e #>> '{}'), %[1]d), '{}'::jsonb) INTO v_stock
			FROM jsonb_array_elements(v_stock) AS e
			WHERE jsonb_typeof(e) = 'string' AND btrim(e #>> '{}') <> '';
		ELSIF jsonb_typeof(v_stock) <> 'object' THEN
			RETURN false;
		END IF;

		v_raw := btrim(v_stock ->> p_size);
		v_current := CASE WHEN v_raw ~ '^-?[0-9]+$' THEN v_raw::int ELSE 0 END;

		v_new := CASE p_movement_type
			WHEN 'in' THEN v_current + p_quantity
			WHEN 'out' THEN v_current - p_quantity
			WHEN 'adjustment' THEN v_current + p_quantity
			ELSE NULL
		END;
		IF v_new IS NULL OR v_new < 0 THEN
			RETURN false;
		END IF;

		UPDATE products
		SET stock = jsonb_set(v_stock, ARRAY[p_size], to_jsonb(v_new)),
		    updated_at = now()
		WHERE id = p_product_id;

		INSERT INTO stock_movements (product_id, size, movement_type, quantity, previous_stock, new_stock, reason)
		VALUES (p_product_id, p_size, p_movement_type, p_quantity, v_current, v_new, p_reason);
		RETURN true;
	END;
	$$`, stock.DefaultLabelQuantity)

func bootstrapSchema(ctx context.Context, db *sql.DB) {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			panic(err)
		}
	}
	log.Printf("[DEBUG] schema bootstrap: %d statements applied", len(schemaStatements))
}
