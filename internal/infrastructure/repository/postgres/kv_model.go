package postgres

import "time"

const kvTable = "kv_entries"

type kvEntryModel struct {
	Key       string    `db:"key"`
	Value     []byte    `db:"value"`
	UpdatedAt time.Time `db:"updated_at"`
}
