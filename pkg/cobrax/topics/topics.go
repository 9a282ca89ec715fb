// Package topics provides a topic-based help system for Cobra CLI
// applications. Topics are text or markdown documents read from an
// fs.FS, typically one embedded in the binary, and shown by
// `help <topic>` next to the regular command help.
package topics

import (
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/wzhd/rotor/pkg/errors"
)

// Manager holds the help topics of a Cobra application
type Manager struct {
	fsys         fs.FS
	topics       map[string]*Topic
	originalHelp func(*cobra.Command, []string)
	extensions   []string
	renderer     Renderer
}

// Topic is one help document
type Topic struct {
	Name    string
	Path    string
	Content string
}

// Options configures the Manager
type Options struct {
	// Extensions is the list of file extensions to consider as topics.
	// Defaults to [".txt", ".md"].
	Extensions []string

	// Renderer formats topic content. Defaults to PlainRenderer.
	Renderer Renderer
}

// New scans fsys for topics
func New(fsys fs.FS, opts Options) (*Manager, error) {
	m := &Manager{
		fsys:       fsys,
		topics:     make(map[string]*Topic),
		extensions: opts.Extensions,
		renderer:   opts.Renderer,
	}
	if len(m.extensions) == 0 {
		m.extensions = []string{".txt", ".md"}
	}
	if m.renderer == nil {
		m.renderer = &PlainRenderer{}
	}
	if err := m.scan(); err != nil {
		return nil, errors.Wrap(err, errors.ErrIO, "failed to scan help topics")
	}
	return m, nil
}

func (m *Manager) supported(ext string) bool {
	for _, e := range m.extensions {
		if e == ext {
			return true
		}
	}
	return false
}

func (m *Manager) scan() error {
	return fs.WalkDir(m.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := path.Ext(p)
		if !m.supported(ext) {
			return nil
		}
		content, err := fs.ReadFile(m.fsys, p)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(path.Base(p), ext)
		m.topics[name] = &Topic{Name: name, Path: p, Content: string(content)}
		return nil
	})
}

// Get retrieves a topic by name
func (m *Manager) Get(name string) (*Topic, bool) {
	t, ok := m.topics[name]
	return t, ok
}

// List returns the topic names in alphabetical order
func (m *Manager) List() []string {
	names := make([]string, 0, len(m.topics))
	for name := range m.topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render returns the formatted content of t
func (m *Manager) Render(t *Topic) string {
	return m.renderer.Render(t.Content, path.Ext(t.Path))
}

func (m *Manager) printList(w io.Writer, program string) {
	names := m.List()
	if len(names) == 0 {
		fmt.Fprintln(w, "No help topics available.")
		return
	}
	fmt.Fprintln(w, "Available help topics:")
	for _, name := range names {
		fmt.Fprintf(w, "  %s\n", name)
	}
	fmt.Fprintf(w, "\nUse '%s help <topic>' to read about a specific topic.\n", program)
}

// Initialize installs a help command on rootCmd that knows about the
// topics in fsys in addition to the commands.
func Initialize(rootCmd *cobra.Command, fsys fs.FS, opts Options) (*Manager, error) {
	m, err := New(fsys, opts)
	if err != nil {
		return nil, err
	}
	m.originalHelp = rootCmd.HelpFunc()

	helpCmd := &cobra.Command{
		Use:   "help [command or topic]",
		Short: "Help about any command or topic",
		Long: `Help provides help for any command or topic in the application.
Simply type ` + rootCmd.Name() + ` help [path to command or topic] for full details.

To see all available help topics:
  ` + rootCmd.Name() + ` help topics`,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			completions := []string{"topics"}
			for _, c := range rootCmd.Commands() {
				if !c.Hidden {
					completions = append(completions, c.Name())
				}
			}
			completions = append(completions, m.List()...)
			return completions, cobra.ShellCompDirectiveNoFileComp
		},
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) == 0 {
				m.originalHelp(rootCmd, []string{})
				return
			}
			if args[0] == "topics" {
				m.printList(cmd.OutOrStdout(), rootCmd.Name())
				return
			}
			if t, ok := m.Get(args[0]); ok {
				fmt.Fprint(cmd.OutOrStdout(), m.Render(t))
				return
			}
			if sub, _, err := rootCmd.Find(args); err == nil && sub != rootCmd {
				m.originalHelp(sub, nil)
				return
			}
			m.originalHelp(rootCmd, args)
		},
	}

	for _, c := range rootCmd.Commands() {
		if c.Name() == "help" {
			rootCmd.RemoveCommand(c)
			break
		}
	}
	rootCmd.SetHelpCommand(helpCmd)
	return m, nil
}
