package mini

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/mixtape-cli/mixtape/icon"
	"github.com/mixtape-cli/mixtape/style"
	"github.com/mixtape-cli/mixtape/util"
	"github.com/muesli/reflow/truncate"
	"github.com/samber/lo"
)

// bind is a non-item menu action, rendered after the list entries.
type bind struct {
	label string
}

func (b *bind) String() string {
	return b.label
}

func (b *bind) eq(other *bind) bool {
	return b != nil && other != nil && b.label == other.label
}

var (
	quit      = &bind{"Quit"}
	back      = &bind{"Back"}
	search    = &bind{"Search"}
	next      = &bind{"Next track"}
	prev      = &bind{"Previous track"}
	replay    = &bind{"Replay"}
	pauseB    = &bind{icon.Get(icon.Pause) + " Pause"}
	resumeB   = &bind{icon.Get(icon.Play) + " Resume"}
	forwardB  = &bind{"Seek forward"}
	rewindB   = &bind{"Seek back"}
	volUp     = &bind{icon.Get(icon.Volume) + " Volume up"}
	volDown   = &bind{icon.Get(icon.Volume) + " Volume down"}
	downloadB = &bind{icon.Get(icon.Download) + " Download"}
)

func title(s string) {
	fmt.Println(style.Title(s))
}

func fail(s string) {
	fmt.Printf("%s %s\n", icon.Get(icon.Fail), s)
}

func progress(s string) (eraser func()) {
	return util.PrintErasable(fmt.Sprintf("%s %s", icon.Get(icon.Progress), s))
}

type input struct {
	value string
}

// getInput prompts for a single line and re-asks until validate accepts it.
func getInput(validate func(string) bool) (*input, error) {
	var value string

	err := survey.AskOne(
		&survey.Input{Message: ">"},
		&value,
		survey.WithValidator(func(ans interface{}) error {
			s, _ := ans.(string)
			if !validate(s) {
				return fmt.Errorf("invalid input")
			}
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}

	return &input{value: value}, nil
}

// label caps a menu entry at the terminal width.
func label(s string) string {
	if truncateAt <= 0 {
		return s
	}
	return truncate.StringWithTail(s, uint(truncateAt), "…")
}

// menu renders a select prompt over items plus trailing action binds. Quit is
// always available. When an item is chosen the returned bind is nil.
func menu[T fmt.Stringer](items []T, binds ...*bind) (*bind, T, error) {
	var zero T

	binds = append(binds, quit)

	options := lo.Map(items, func(item T, _ int) string {
		return label(item.String())
	})
	for _, b := range binds {
		options = append(options, b.label)
	}

	var index int
	err := survey.AskOne(
		&survey.Select{Options: options, PageSize: 15},
		&index,
	)
	if err != nil {
		return nil, zero, err
	}

	if index < len(items) {
		return nil, items[index], nil
	}

	return binds[index-len(items)], zero, nil
}
