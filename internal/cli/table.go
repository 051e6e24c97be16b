package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"vercelctl/internal/commands"
	"vercelctl/internal/vercel"
)

// TableOptions controls table rendering.
type TableOptions struct {
	// Plain drops borders and colours for piping into other tools.
	Plain bool
	// NoHeaders suppresses the header row.
	NoHeaders bool
	// Now is used for relative ages; time.Now when nil.
	Now func() time.Time
}

func (o TableOptions) newWriter(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	if o.Plain {
		style := table.StyleDefault
		style.Options = table.OptionsNoBordersAndSeparators
		style.Box.PaddingLeft = ""
		style.Box.PaddingRight = "   "
		style.Format.Header = text.FormatUpper
		t.SetStyle(style)
	} else {
		t.SetStyle(table.StyleRounded)
	}
	return t
}

func (o TableOptions) header(t table.Writer, cells ...interface{}) {
	if o.NoHeaders {
		return
	}
	t.AppendHeader(table.Row(cells))
}

func (o TableOptions) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// RenderDeployments writes deployments as a table.
func RenderDeployments(out io.Writer, deployments []vercel.Deployment, opts TableOptions) {
	t := opts.newWriter(out)
	opts.header(t, "Name", "State", "Target", "URL", "Creator", "Age")

	for _, d := range deployments {
		creator := "-"
		if d.Creator != nil && d.Creator.Username != "" {
			creator = d.Creator.Username
		}
		state := orDash(d.State)
		if !opts.Plain {
			state = colorState(d.State)
		}
		t.AppendRow(table.Row{
			d.Name,
			state,
			orDash(d.Target),
			orDash(d.URL),
			creator,
			formatAge(opts.now(), d),
		})
	}
	t.Render()
}

// RenderTeams writes teams as a table, marking the selected one.
func RenderTeams(out io.Writer, teams []vercel.Team, selected string, opts TableOptions) {
	t := opts.newWriter(out)
	opts.header(t, "", "ID", "Slug", "Name")

	for _, team := range teams {
		marker := ""
		if team.ID == selected {
			marker = "*"
			if !opts.Plain {
				marker = text.FgGreen.Sprint(marker)
			}
		}
		t.AppendRow(table.Row{marker, team.ID, orDash(team.Slug), orDash(team.Name)})
	}
	t.Render()
}

// RenderCommands writes the commands held by registry, sorted by id.
func RenderCommands(out io.Writer, registry *commands.Registry, opts TableOptions) {
	t := opts.newWriter(out)
	opts.header(t, "ID", "Aliases", "Usage", "Description")

	for _, id := range registry.List() {
		cmd, ok := registry.Get(id)
		if !ok {
			continue
		}
		aliases := strings.Join(cmd.Aliases(), ", ")
		t.AppendRow(table.Row{id, orDash(aliases), cmd.Usage(), cmd.Description()})
	}
	t.Render()
}

func colorState(state string) string {
	switch strings.ToUpper(state) {
	case "READY":
		return text.FgGreen.Sprint(state)
	case "ERROR", "CANCELED":
		return text.FgRed.Sprint(state)
	case "BUILDING", "INITIALIZING", "QUEUED":
		return text.FgYellow.Sprint(state)
	case "":
		return "-"
	default:
		return state
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// formatAge renders the time since the deployment was created in the
// largest whole unit.
func formatAge(now time.Time, d vercel.Deployment) string {
	if d.Created == 0 {
		return "-"
	}
	age := now.Sub(d.CreatedAt())
	switch {
	case age < time.Minute:
		return "just now"
	case age < time.Hour:
		return fmt.Sprintf("%dm", int(age.Minutes()))
	case age < 24*time.Hour:
		return fmt.Sprintf("%dh", int(age.Hours()))
	default:
		return fmt.Sprintf("%dd", int(age.Hours()/24))
	}
}
