// ABOUTME: Live-mode schema shared by SQLite and Postgres
// ABOUTME: Column types stick to names both engines accept

package db

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY,
	name TEXT,
	email TEXT NOT NULL,
	openai_api_key TEXT,
	created_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS leads (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL REFERENCES users(id),
	name TEXT NOT NULL,
	email TEXT,
	phone TEXT,
	intent TEXT,
	budget TEXT,
	timeline TEXT,
	lead_score INTEGER,
	summary TEXT,
	stage TEXT,
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_leads_user_created ON leads(user_id, created_at);

CREATE TABLE IF NOT EXISTS marketing_content (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL REFERENCES users(id),
	listing_details TEXT NOT NULL,
	content_type TEXT NOT NULL,
	generated_text TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_marketing_user_created ON marketing_content(user_id, created_at);

CREATE TABLE IF NOT EXISTS deals (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL REFERENCES users(id),
	file_url TEXT,
	buyer TEXT,
	seller TEXT,
	price DOUBLE PRECISION,
	address TEXT,
	missing_signatures TEXT NOT NULL DEFAULT '[]',
	summary TEXT,
	next_tasks TEXT NOT NULL DEFAULT '[]',
	created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_deals_user_created ON deals(user_id, created_at);

CREATE TABLE IF NOT EXISTS clients (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL REFERENCES users(id),
	name TEXT NOT NULL,
	deal_id TEXT REFERENCES deals(id),
	stage TEXT,
	last_message TEXT,
	next_action TEXT,
	created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_clients_user_created ON clients(user_id, created_at);

CREATE TABLE IF NOT EXISTS messages (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL REFERENCES users(id),
	client_id TEXT REFERENCES clients(id),
	sender TEXT NOT NULL CHECK(sender IN ('agent', 'ai', 'client')),
	content TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_messages_client_created ON messages(client_id, created_at);
`

// TableNames are the live-mode tables, in creation order.
var TableNames = []string{"users", "leads", "marketing_content", "deals", "clients", "messages"}

func InitSchema(db *DB) error {
	_, err := db.DB.Exec(schema)
	return err
}
