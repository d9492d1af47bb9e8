package tui

import "github.com/charmbracelet/bubbles/key"

type Keymap struct {
	Quit       key.Binding
	Toggle     key.Binding
	Clear      key.Binding
	StartBack  key.Binding
	StartFwd   key.Binding
	EndBack    key.Binding
	EndFwd     key.Binding
	StepDown   key.Binding
	StepUp     key.Binding
	Reset      key.Binding
	EnterDates key.Binding
	Cases      key.Binding
	Deaths     key.Binding
	Records    key.Binding
	Inspect    key.Binding
	Files      key.Binding
	ExportHTML key.Binding
	ExportPNG  key.Binding
	Sidebar    key.Binding
	Help       key.Binding
	AllKeys    key.Binding
	Close      key.Binding
}

var Keys = Keymap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" ", "enter"),
		key.WithHelp("space", "toggle country"),
	),
	Clear: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "clear selection"),
	),
	StartBack: key.NewBinding(
		key.WithKeys("["),
		key.WithHelp("[/]", "move start"),
	),
	StartFwd: key.NewBinding(
		key.WithKeys("]"),
	),
	EndBack: key.NewBinding(
		key.WithKeys("{"),
		key.WithHelp("{/}", "move end"),
	),
	EndFwd: key.NewBinding(
		key.WithKeys("}"),
	),
	StepDown: key.NewBinding(
		key.WithKeys("-", "_"),
		key.WithHelp("-/+", "step"),
	),
	StepUp: key.NewBinding(
		key.WithKeys("+", "="),
	),
	Reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "full range"),
	),
	EnterDates: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "type dates"),
	),
	Cases: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "cases"),
	),
	Deaths: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "deaths"),
	),
	Records: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "records"),
	),
	Inspect: key.NewBinding(
		key.WithKeys("i"),
		key.WithHelp("i", "inspect"),
	),
	Files: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open file"),
	),
	ExportHTML: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "export html"),
	),
	ExportPNG: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "export png"),
	),
	Sidebar: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "sidebar"),
	),
	Help: key.NewBinding(
		key.WithKeys("h"),
		key.WithHelp("h", "help line"),
	),
	AllKeys: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "all keys"),
	),
	Close: key.NewBinding(
		key.WithKeys("esc"),
	),
}

// ShortHelp implements help.KeyMap.
func (k Keymap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.StartBack, k.EndBack, k.StepDown, k.EnterDates, k.Cases, k.Deaths, k.AllKeys, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k Keymap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Clear, k.Sidebar},
		{k.StartBack, k.EndBack, k.StepDown, k.Reset, k.EnterDates},
		{k.Cases, k.Deaths, k.Records, k.Inspect},
		{k.Files, k.ExportHTML, k.ExportPNG, k.Help, k.AllKeys, k.Quit},
	}
}
