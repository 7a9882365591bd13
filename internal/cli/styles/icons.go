// Package styles provides the lipgloss styles and renderers of the CLI.
package styles

// Nerd Font icons (requires a Nerd Font to display correctly)
const (
	IconShield    = "\uf132" // shield
	IconVersion   = "\uf02b" // tag
	IconGitBranch = "\ue725" // git branch
	IconCalendar  = "\uf073" // calendar
	IconGithub    = "\uf09b" // github
	IconGo        = "\ue627" // go gopher
	IconArrow     = "\uf061" // arrow right

	IconCheck   = "\uf00c" // check
	IconX       = "\uf00d" // x
	IconWarning = "\uf071" // warning
	IconInfo    = "\uf05a" // info

	IconConfig   = "\ue615" // config
	IconDatabase = "\uf1c0" // database
	IconFilter   = "\uf0b0" // filter
	IconImage    = "\uf1c5" // image file
	IconClock    = "\uf017" // clock
	IconGlobe    = "\uf0ac" // browser/web
	IconPlay     = "\uf04b" // play (running)
)
