package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/lot-expiry-notifications/pkg/logger"
)

type migrationStep struct {
	Name string
	SQL  string
}

// Esquema propio del servicio. Las tablas de inventario (categorías, productos, lotes,
// ubicaciones, quants) reflejan lo que expone el subsistema de inventario.
var migrationSteps = []migrationStep{
	{
		Name: "create_table_product_categories",
		SQL: `CREATE TABLE IF NOT EXISTS product_categories (
  id            TEXT PRIMARY KEY,
  parent_id     TEXT REFERENCES product_categories (id),
  name          TEXT NOT NULL,
  complete_name TEXT
);`,
	},
	{
		Name: "create_table_products",
		SQL: `CREATE TABLE IF NOT EXISTS products (
  id           TEXT PRIMARY KEY,
  name         TEXT NOT NULL,
  default_code TEXT,
  category_id  TEXT REFERENCES product_categories (id)
);`,
	},
	{
		Name: "create_table_lots",
		SQL: `CREATE TABLE IF NOT EXISTS lots (
  id              TEXT PRIMARY KEY,
  name            TEXT NOT NULL,
  product_id      TEXT REFERENCES products (id),
  expiration_date TIMESTAMPTZ
);`,
	},
	{
		Name: "create_table_locations",
		SQL: `CREATE TABLE IF NOT EXISTS locations (
  id    TEXT PRIMARY KEY,
  name  TEXT NOT NULL,
  usage TEXT NOT NULL DEFAULT 'internal'
);`,
	},
	{
		Name: "create_table_quants",
		SQL: `CREATE TABLE IF NOT EXISTS quants (
  id          TEXT PRIMARY KEY,
  product_id  TEXT NOT NULL REFERENCES products (id),
  lot_id      TEXT REFERENCES lots (id),
  location_id TEXT NOT NULL REFERENCES locations (id),
  quantity    NUMERIC(18, 4) NOT NULL DEFAULT 0,
  in_date     TIMESTAMPTZ
);`,
	},
	{
		Name: "create_table_users",
		SQL: `CREATE TABLE IF NOT EXISTS users (
  id            TEXT PRIMARY KEY,
  company_id    TEXT,
  email         TEXT,
  password_hash TEXT NOT NULL DEFAULT '',
  name          TEXT NOT NULL,
  role          TEXT NOT NULL DEFAULT 'bodeguero',
  status        TEXT NOT NULL DEFAULT 'active',
  tz            TEXT,
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_partners",
		SQL: `CREATE TABLE IF NOT EXISTS partners (
  id    TEXT PRIMARY KEY,
  name  TEXT NOT NULL,
  email TEXT
);`,
	},
	{
		Name: "create_table_report_configs",
		SQL: `CREATE TABLE IF NOT EXISTS report_configs (
  id             TEXT PRIMARY KEY,
  name           TEXT NOT NULL,
  days_threshold INTEGER NOT NULL DEFAULT 30 CHECK (days_threshold >= 0),
  created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS report_config_categories (
  config_id   TEXT NOT NULL REFERENCES report_configs (id) ON DELETE CASCADE,
  category_id TEXT NOT NULL REFERENCES product_categories (id) ON DELETE CASCADE,
  PRIMARY KEY (config_id, category_id)
);`,
	},
	{
		Name: "create_table_recipient_rules",
		SQL: `CREATE TABLE IF NOT EXISTS recipient_rules (
  id         TEXT PRIMARY KEY,
  name       TEXT NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS recipient_rule_categories (
  rule_id     TEXT NOT NULL REFERENCES recipient_rules (id) ON DELETE CASCADE,
  category_id TEXT NOT NULL REFERENCES product_categories (id) ON DELETE CASCADE,
  PRIMARY KEY (rule_id, category_id)
);
CREATE TABLE IF NOT EXISTS recipient_rule_users (
  rule_id TEXT NOT NULL REFERENCES recipient_rules (id) ON DELETE CASCADE,
  user_id TEXT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
  PRIMARY KEY (rule_id, user_id)
);
CREATE TABLE IF NOT EXISTS recipient_rule_partners (
  rule_id    TEXT NOT NULL REFERENCES recipient_rules (id) ON DELETE CASCADE,
  partner_id TEXT NOT NULL REFERENCES partners (id) ON DELETE CASCADE,
  PRIMARY KEY (rule_id, partner_id)
);`,
	},
	{
		Name: "create_table_mail_messages",
		SQL: `CREATE TABLE IF NOT EXISTS mail_messages (
  id              TEXT PRIMARY KEY,
  subject         TEXT NOT NULL,
  body_html       TEXT NOT NULL DEFAULT '',
  email_to        TEXT NOT NULL,
  attachment_name TEXT NOT NULL DEFAULT '',
  attachment_key  TEXT NOT NULL DEFAULT '',
  state           TEXT NOT NULL CHECK (state IN ('outgoing', 'sent', 'exception')),
  error           TEXT NOT NULL DEFAULT '',
  created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
  sent_at         TIMESTAMPTZ
);`,
	},
	{
		Name: "create_indexes",
		SQL: `CREATE INDEX IF NOT EXISTS idx_lots_expiration_date ON lots (expiration_date);
CREATE INDEX IF NOT EXISTS idx_quants_lot_id ON quants (lot_id);
CREATE INDEX IF NOT EXISTS idx_products_category_id ON products (category_id);
CREATE INDEX IF NOT EXISTS idx_mail_messages_created_at ON mail_messages (created_at);`,
	},
}

// EnsureMigrated aplica el esquema en una sola transacción. Todas las sentencias son idempotentes.
func EnsureMigrated(ctx context.Context, q Querier, log *logger.Logger) error {
	start := time.Now()
	log = log.WithComponent("database")
	err := inTx(ctx, q, func(tx pgx.Tx) error {
		for _, step := range migrationSteps {
			if _, err := tx.Exec(ctx, step.SQL); err != nil {
				return fmt.Errorf("migración %s: %w", step.Name, err)
			}
			log.Debug().Str("step", step.Name).Msg("migración aplicada")
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Dur("duration", time.Since(start)).Msg("migración fallida")
		return err
	}
	log.Info().Int("steps", len(migrationSteps)).Dur("duration", time.Since(start)).Msg("esquema al día")
	return nil
}
