package journal

import "github.com/imalkevich/candle-to-screenshot/internal/model"

// NoopJournal is a no-op implementation used when SQLite is not available.
type NoopJournal struct{}

func NewNoopJournal() *NoopJournal { return &NoopJournal{} }

func (n *NoopJournal) RecordLabel(_ *model.LabelEvent) error { return nil }
func (n *NoopJournal) RecordTrade(_ *model.Trade) error      { return nil }
func (n *NoopJournal) Close() error                          { return nil }
