package model

// SnippetRole names one of the machine specific text blocks inlined into
// a cutting program.
type SnippetRole string

const (
	SnippetStartProgram        SnippetRole = "start-program"
	SnippetEndProgram          SnippetRole = "end-program"
	SnippetPickFiller          SnippetRole = "pick-filler"
	SnippetDropFiller          SnippetRole = "drop-filler"
	SnippetBeforeVerticalCut   SnippetRole = "before-vertical-cut"
	SnippetAfterVerticalCut    SnippetRole = "after-vertical-cut"
	SnippetBeforeHorizontalCut SnippetRole = "before-horizontal-cut"
	SnippetAfterHorizontalCut  SnippetRole = "after-horizontal-cut"
)

// SnippetRoles lists every role in program order.
var SnippetRoles = []SnippetRole{
	SnippetStartProgram,
	SnippetPickFiller,
	SnippetDropFiller,
	SnippetBeforeVerticalCut,
	SnippetAfterVerticalCut,
	SnippetBeforeHorizontalCut,
	SnippetAfterHorizontalCut,
	SnippetEndProgram,
}

// MachineProfile maps snippet roles to files for one cutting machine.
type MachineProfile struct {
	Name        string                 `yaml:"name" json:"name"`
	Description string                 `yaml:"description,omitempty" json:"description,omitempty"`
	IsBuiltIn   bool                   `yaml:"-" json:"is_built_in"`
	SnippetDir  string                 `yaml:"snippet_dir,omitempty" json:"snippet_dir,omitempty"` // Overrides AppConfig.SnippetDir when set
	Snippets    map[SnippetRole]string `yaml:"snippets" json:"snippets"`                           // Role to file name, relative to the snippet dir
}

// SnippetFile returns the file name configured for role, falling back to
// the default machine's file name.
func (p MachineProfile) SnippetFile(role SnippetRole) string {
	if name, ok := p.Snippets[role]; ok && name != "" {
		return name
	}
	return defaultSnippetFiles[role]
}

// defaultSnippetFiles are the file names shipped with the standard
// textile cutter configuration.
var defaultSnippetFiles = map[SnippetRole]string{
	SnippetStartProgram:        "start_program.txt",
	SnippetEndProgram:          "end_program.txt",
	SnippetPickFiller:          "pick_textile.txt",
	SnippetDropFiller:          "drop_textile.txt",
	SnippetBeforeVerticalCut:   "before_y_cut.txt",
	SnippetAfterVerticalCut:    "after_y_cut.txt",
	SnippetBeforeHorizontalCut: "before_x_cut.txt",
	SnippetAfterHorizontalCut:  "after_x_cut.txt",
}

// Built-in machine profiles
var MachineProfiles = []MachineProfile{
	{
		Name:        "Standard",
		Description: "Textile cutter with pull clamp, one snippet file per role",
		IsBuiltIn:   true,
		Snippets:    copySnippetFiles(defaultSnippetFiles),
	},
}

// CustomProfiles holds user defined profiles loaded at startup.
var CustomProfiles []MachineProfile

// AllProfiles returns the built-in profiles followed by the custom ones.
func AllProfiles() []MachineProfile {
	all := make([]MachineProfile, 0, len(MachineProfiles)+len(CustomProfiles))
	all = append(all, MachineProfiles...)
	all = append(all, CustomProfiles...)
	return all
}

// GetProfile returns a machine profile by name, or the Standard profile if not found.
func GetProfile(name string) MachineProfile {
	for _, p := range AllProfiles() {
		if p.Name == name {
			return p
		}
	}
	return MachineProfiles[0]
}

// GetProfileNames returns a list of all available profile names.
func GetProfileNames() []string {
	var names []string
	for _, p := range AllProfiles() {
		names = append(names, p.Name)
	}
	return names
}

func copySnippetFiles(in map[SnippetRole]string) map[SnippetRole]string {
	out := make(map[SnippetRole]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
