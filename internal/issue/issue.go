// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"
)

const (
	// ConfigLoadFailedId: the configuration file is missing or invalid.
	ConfigLoadFailedId Id = iota + 1
	// GuidesFileInvalidId: the guide registry could not be loaded.
	GuidesFileInvalidId
	// NoTermsFoundId: discovery produced an empty index.
	NoTermsFoundId
	// TermNotFoundId: a requested term does not exist.
	TermNotFoundId
	// ValidationFailedId: the index build produced error diagnostics.
	ValidationFailedId
	// ExportFailedId: the index could not be written.
	ExportFailedId
	// ServerStartFailedId: the HTTP server could not listen.
	ServerStartFailedId
)

type (
	// Id identifies a catalog entry.
	Id int

	// MarkdownMsg is Markdown guidance rendered for the terminal.
	MarkdownMsg string

	// HttpLink is a documentation URL.
	HttpLink string

	// Issue is one catalog entry.
	Issue struct {
		id       Id
		mdMsg    MarkdownMsg
		docLinks []HttpLink
	}
)

var (
	render = glamour.Render

	issues = map[Id]*Issue{
		ConfigLoadFailedId: {
			id: ConfigLoadFailedId,
			mdMsg: `
# Configuration could not be loaded

The configuration file is read from the platform config directory
(see ` + "`glossary config path`" + `) or from ` + "`--config`" + `.

## Things you can try
- Print the effective configuration:
~~~
$ glossary config show
~~~
- Write a fresh default file:
~~~
$ glossary config init
~~~`,
		},
		GuidesFileInvalidId: {
			id: GuidesFileInvalidId,
			mdMsg: `
# The guide registry is invalid

Every guide needs a unique lowercase ` + "`id`" + ` and each section id may be
listed by a single guide.

~~~cue
guides: [{
	id:    "kafka"
	title: "Apache Kafka"
	sections: [{id: "kafka-intro", title: "What is Kafka?"}]
}]
~~~`,
		},
		NoTermsFoundId: {
			id: NoTermsFoundId,
			mdMsg: `
# No glossary terms were found

Term modules are files named ` + "`<name>.glossary.cue`" + ` inside the bundled
set or one of the configured ` + "`term_dirs`" + `.

## Things you can try
- Check ` + "`include_builtin`" + ` and ` + "`term_dirs`" + ` with ` + "`glossary config show`" + `
- Run ` + "`glossary validate`" + ` to list modules that were skipped`,
		},
		TermNotFoundId: {
			id: TermNotFoundId,
			mdMsg: `
# Term not found

Terms are identified by category and name. Search for it first:
~~~
$ glossary list --search <text>
~~~`,
		},
		ValidationFailedId: {
			id: ValidationFailedId,
			mdMsg: `
# Glossary data has errors

Some terms or modules were excluded from the index. Each diagnostic names
the module it came from. Fix the data and run ` + "`glossary validate`" + ` again.`,
		},
		ExportFailedId: {
			id: ExportFailedId,
			mdMsg: `
# The index could not be written

Check that the output directory exists and is writable, and that the
format is one of ` + "`json`" + `, ` + "`yaml`" + ` or ` + "`toml`" + `.`,
		},
		ServerStartFailedId: {
			id: ServerStartFailedId,
			mdMsg: `
# The HTTP server could not start

Another process may already be listening on the address. Pick a different
one with ` + "`--addr`" + ` or ` + "`server.addr`" + `.`,
		},
	}
)

// Id returns the catalog id.
func (i *Issue) Id() Id {
	return i.id
}

// MarkdownMsg returns the raw Markdown guidance.
func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

// DocLinks returns the documentation links of the issue.
func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

// Render renders the guidance with the given glamour style ("dark", "light",
// "notty", ...).
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 {
		md.WriteString("\n\n## See also\n")
		for _, link := range i.docLinks {
			md.WriteString("- " + string(link) + "\n")
		}
	}
	return render(md.String(), stylePath)
}

// Values returns every catalog entry ordered by id.
func Values() []*Issue {
	ids := slices.Sorted(maps.Keys(issues))
	out := make([]*Issue, len(ids))
	for i, id := range ids {
		out[i] = issues[id]
	}
	return out
}

// Get returns the catalog entry for id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}
