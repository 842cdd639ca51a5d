package help

// Group separates numbered menu actions from keyword commands.
type Group string

const (
	GroupData    Group = "data"
	GroupPlot    Group = "plot"
	GroupSave    Group = "save"
	GroupGeneral Group = "general"
)

// GroupOrder is the order groups appear in on the help screen.
var GroupOrder = []Group{GroupData, GroupPlot, GroupSave, GroupGeneral}

var groupNames = map[Group]string{
	GroupData:    "Data",
	GroupPlot:    "Plotting",
	GroupSave:    "Saving",
	GroupGeneral: "General",
}

// DisplayName returns the heading for the group.
func (g Group) DisplayName() string {
	if name, ok := groupNames[g]; ok {
		return name
	}
	return string(g)
}

// Option is one entry of the main menu.
type Option struct {
	// Key is what the user types: "1".."6", "help" or "exit".
	Key string

	// Label is the menu text exactly as printed in the menu.
	Label string

	Group Group

	// Description explains the action on the help screen.
	Description string

	// Prompts lists what the action asks for, in order.
	Prompts []string

	// NeedsTable is true for actions that require a loaded CSV file.
	NeedsTable bool
}

// Options is the menu, in display order.
var Options = []Option{
	{
		Key:         "1",
		Label:       "1. Read CSV file",
		Group:       GroupData,
		Description: "Pick a .csv file from the current directory and load it",
		Prompts:     []string{"file index"},
	},
	{
		Key:         "2",
		Label:       "2. Display available plot options",
		Group:       GroupData,
		Description: "List the loaded columns with the index used by the plot actions",
		NeedsTable:  true,
	},
	{
		Key:         "3",
		Label:       "3. Plot a column",
		Group:       GroupPlot,
		Description: "Draw one or more columns on one chart and open it in a window",
		Prompts:     []string{"column indices, -1 to finish", "plot type (hist, line, bar, box)", "title"},
		NeedsTable:  true,
	},
	{
		Key:         "4",
		Label:       "4. Plot two columns againts eachother",
		Group:       GroupPlot,
		Description: "Scatter one column against another, optionally with a best-fit line",
		Prompts:     []string{"x column index", "y column index", "plot type (scatter, line)", "title"},
		NeedsTable:  true,
	},
	{
		Key:         "5",
		Label:       "5. Save plot of column",
		Group:       GroupSave,
		Description: "Same as 3 but writes the chart to a file",
		Prompts:     []string{"column indices, -1 to finish", "plot type", "title", "format", "file name"},
		NeedsTable:  true,
	},
	{
		Key:         "6",
		Label:       "6. Save plot of two columns againts eachother",
		Group:       GroupSave,
		Description: "Same as 4 but writes the chart to a file",
		Prompts:     []string{"x column index", "y column index", "plot type", "title", "format", "file name"},
		NeedsTable:  true,
	},
	{
		Key:         "help",
		Label:       "'help' Help",
		Group:       GroupGeneral,
		Description: "Show this help",
	},
	{
		Key:         "exit",
		Label:       "'exit' Exit",
		Group:       GroupGeneral,
		Description: "Leave csvplot",
	},
}

// GetOption returns the menu entry for key.
func GetOption(key string) (Option, bool) {
	for _, opt := range Options {
		if opt.Key == key {
			return opt, true
		}
	}
	return Option{}, false
}

// GetOptionsByGroup returns all menu entries in a group.
func GetOptionsByGroup(g Group) []Option {
	var result []Option
	for _, opt := range Options {
		if opt.Group == g {
			result = append(result, opt)
		}
	}
	return result
}

// Keys returns every accepted menu input in display order.
func Keys() []string {
	keys := make([]string, len(Options))
	for i, opt := range Options {
		keys[i] = opt.Key
	}
	return keys
}
