package fieldtype

// Seed option catalogs for the status/priority style columns the stock
// tables ship with. These are bootstrap data only: once rows exist in the
// persisted option store they are the single source of truth and these
// lists are never consulted again.

type SeedSet struct {
	Table   string
	Column  string
	Options []Option
}

func SeedSets() []SeedSet {
	return []SeedSet{
		{Table: "tasks", Column: "status", Options: []Option{
			{Value: "To Do", Label: "To Do", Color: "#6b7280"},
			{Value: "In Progress", Label: "In Progress", Color: "#3b82f6"},
			{Value: "Done", Label: "Done", Color: "#22c55e"},
		}},
		{Table: "tasks", Column: "priority", Options: []Option{
			{Value: "Low", Label: "Low", Color: "#22c55e"},
			{Value: "Medium", Label: "Medium", Color: "#f59e0b"},
			{Value: "High", Label: "High", Color: "#ef4444"},
		}},
		{Table: "customers", Column: "status", Options: []Option{
			{Value: "Pending", Label: "Pending", Color: "#f59e0b"},
			{Value: "Active", Label: "Active", Color: "#22c55e"},
			{Value: "Inactive", Label: "Inactive", Color: "#6b7280"},
		}},
		{Table: "leads", Column: "status", Options: []Option{
			{Value: "New", Label: "New", Color: "#3b82f6"},
			{Value: "Contacted", Label: "Contacted", Color: "#8b5cf6"},
			{Value: "Qualified", Label: "Qualified", Color: "#22c55e"},
			{Value: "Lost", Label: "Lost", Color: "#ef4444"},
		}},
		{Table: "finances", Column: "type", Options: []Option{
			{Value: "Income", Label: "Income", Color: "#22c55e"},
			{Value: "Expense", Label: "Expense", Color: "#ef4444"},
		}},
	}
}
