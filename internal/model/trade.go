package model

// Side indicates the direction of a simulated position.
type Side string

const (
	SideLong  Side = "long"
	SideShort Side = "short"
)

// Category is a labeling bucket. Folder membership under the processed
// tree is the label itself; these names double as subfolder names.
type Category string

const (
	CategoryNormal   Category = "normal"
	CategoryBuy      Category = "buy"
	CategoryBuyExit  Category = "buy_exit"
	CategorySell     Category = "sell"
	CategorySellExit Category = "sell_exit"
)

// Categories lists all labeling buckets in folder order.
var Categories = []Category{CategoryNormal, CategoryBuy, CategoryBuyExit, CategorySell, CategorySellExit}

// EntryCategory returns the entry bucket for a side.
func EntryCategory(side Side) Category {
	if side == SideShort {
		return CategorySell
	}
	return CategoryBuy
}

// ExitCategory returns the exit bucket for a side.
func ExitCategory(side Side) Category {
	if side == SideShort {
		return CategorySellExit
	}
	return CategoryBuyExit
}

// Trade pairs an entry screenshot with an exit screenshot of the same side.
// Indices are the 1-based sequence numbers embedded in screenshot filenames.
type Trade struct {
	Side       Side
	EntryIndex int
	EntryPrice float64
	ExitIndex  int
	ExitPrice  float64
}

// Closed reports whether the trade has a paired exit.
func (t *Trade) Closed() bool { return t.ExitIndex > 0 }

// Result returns the per-trade P&L using the side-dependent sign
// convention: exit-entry for long, entry-exit for short.
func (t *Trade) Result() float64 {
	if t.Side == SideShort {
		return t.EntryPrice - t.ExitPrice
	}
	return t.ExitPrice - t.EntryPrice
}
