package journal

import "github.com/imalkevich/candle-to-screenshot/internal/model"

// Journal persists an append-only audit trail of the labeling session.
// The processed folders stay authoritative for resume; the journal exists
// so a session can be audited after the fact.
type Journal interface {
	RecordLabel(evt *model.LabelEvent) error
	RecordTrade(trade *model.Trade) error
	Close() error
}
