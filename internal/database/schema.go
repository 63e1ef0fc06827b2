package database

// Schema is the catalogue schema used by the repositories.
// Legacy pricing and MOQ columns are nullable; variants hold the current
// per-channel pricing as JSONB.
const Schema = `
CREATE TABLE IF NOT EXISTS brands (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	currency   TEXT NOT NULL DEFAULT '',
	moa        NUMERIC(12,2) CHECK (moa IS NULL OR moa > 0),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS brand_volume_discounts (
	brand_id            TEXT NOT NULL REFERENCES brands(id) ON DELETE CASCADE,
	threshold           NUMERIC(12,2) NOT NULL CHECK (threshold > 0),
	discount_percentage NUMERIC(5,2) NOT NULL CHECK (discount_percentage > 0 AND discount_percentage <= 100),
	PRIMARY KEY (brand_id, threshold)
);

CREATE TABLE IF NOT EXISTS products (
	id                TEXT PRIMARY KEY,
	brand_id          TEXT NOT NULL REFERENCES brands(id),
	name              TEXT NOT NULL,
	category          TEXT NOT NULL DEFAULT '',
	variants          JSONB NOT NULL DEFAULT '[]'::jsonb,
	price_item        NUMERIC(12,2),
	price_carton      NUMERIC(12,2),
	price_wholesale   NUMERIC(12,2),
	price_retail      NUMERIC(12,2),
	price_currency    TEXT,
	retail_price_item NUMERIC(12,2),
	items_per_carton  INTEGER,
	moq_units         INTEGER,
	moq               INTEGER,
	moq_unit          TEXT,
	created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_products_brand_id ON products(brand_id);

CREATE TABLE IF NOT EXISTS discount_usage (
	id            UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	discount_code TEXT NOT NULL,
	customer_id   TEXT NOT NULL,
	order_id      TEXT,
	used_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_discount_usage_code_customer ON discount_usage(discount_code, customer_id);
`
