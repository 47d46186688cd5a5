// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

// Catalog entries.
const (
	ScriptNotReadableId Id = iota + 1
	MalformedHeaderId
	PathResolutionFailedId
	RuntimeNotFoundId
	ConfigLoadFailedId
)

const (
	// StyleNoTTY renders guidance as plain text.
	StyleNoTTY = "notty"
	// StyleDark renders guidance for dark terminals.
	StyleDark = "dark"
)

type (
	// Id identifies a catalog entry. The zero Id means "no entry".
	Id int

	// MarkdownMsg is guidance text in Markdown.
	MarkdownMsg string

	// HttpLink is a documentation URL.
	HttpLink string

	// Issue is a catalog entry with longer guidance for a failure kind.
	Issue struct {
		id       Id
		mdMsg    MarkdownMsg
		extLinks []HttpLink
	}
)

// Id returns the entry's identifier.
func (i *Issue) Id() Id {
	return i.id
}

// MarkdownMsg returns the raw guidance text.
func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

// ExtLinks returns external references for the entry.
func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render formats the guidance with the named glamour style.
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.extLinks) > 0 {
		md.WriteString("\n\n## See also\n")
		for _, link := range i.extLinks {
			md.WriteString("\n- ")
			md.WriteString(string(link))
		}
	}
	return render(md.String(), stylePath)
}

var (
	render = glamour.Render

	scriptNotReadableIssue = &Issue{
		id: ScriptNotReadableId,
		mdMsg: `
# The script could not be opened

docker-script reads the first two lines of the script before launching anything.

## Things you can try
- Check the path for typos; it is resolved relative to the current directory
- Make sure the path names a file, not a directory
- Make sure the file is readable by the current user`,
	}

	malformedHeaderIssue = &Issue{
		id: MalformedHeaderId,
		mdMsg: `
# The second line of the script is not a container header

The first line is an ordinary shebang for the host shell. The second line
names the image and the interpreter to run inside it:

~~~
#!/usr/bin/env docker-script
#!python:3.12 python3 -u
~~~

## Things you can try
- Start the second line with ` + "`#!`" + ` and no leading spaces
- Separate the image and the interpreter with a single space
- Do not put spaces inside the image reference`,
	}

	pathResolutionFailedIssue = &Issue{
		id: PathResolutionFailedId,
		mdMsg: `
# A path could not be resolved

The script's directory and the current directory are bind-mounted into the
container, so both must exist and their symbolic links must resolve.

## Things you can try
- Check that the script still exists at the given path
- Check that no symbolic link in the path is dangling
- Change to a directory that exists before running the script`,
	}

	runtimeNotFoundIssue = &Issue{
		id: RuntimeNotFoundId,
		mdMsg: `
# The container runtime is not installed

The script was about to be launched with a runtime binary that is not on PATH.
Images that need a GPU are launched with ` + "`nvidia-docker`" + `; everything else
uses ` + "`docker`" + `.

## Things you can try
- Install the runtime, or add its directory to PATH
- Use ` + "`---dry-run`" + ` to print the command without running it
- Set ` + "`runtime.default`" + ` or ` + "`runtime.gpu`" + ` in the configuration file`,
		extLinks: []HttpLink{
			"https://docs.docker.com/engine/install/",
			"https://github.com/NVIDIA/nvidia-docker",
		},
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# The configuration file is invalid

The file is written in CUE. Every field is optional:

~~~cue
runtime: {
	default: "docker"
	gpu:     "nvidia-docker"
}
extra_gpu_images: ["pytorch/pytorch:latest-cuda"]
gpu_aliases: ["nvidia-docker-script"]
ui: verbose: false
~~~

## Things you can try
- Fix the field named in the error message
- Remove the file to go back to the defaults`,
		extLinks: []HttpLink{"https://cuelang.org/docs/"},
	}

	issues = map[Id]*Issue{
		scriptNotReadableIssue.Id():    scriptNotReadableIssue,
		malformedHeaderIssue.Id():      malformedHeaderIssue,
		pathResolutionFailedIssue.Id(): pathResolutionFailedIssue,
		runtimeNotFoundIssue.Id():      runtimeNotFoundIssue,
		configLoadFailedIssue.Id():     configLoadFailedIssue,
	}
)

// Get returns the entry for id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}
