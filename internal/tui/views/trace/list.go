package trace

import (
	"rvscroll/internal/command"
	"rvscroll/internal/tui/state"
	"rvscroll/internal/tui/util"
	chips "rvscroll/internal/tui/widgets/tagchips"
)

// RenderTags is a thin adapter over the TagChips widget for the plan trace.
func RenderTags(tags []state.Tag, noColor bool) string {
	return chips.View(tags, noColor)
}

// RenderPlan summarizes one batch of commands as chips.
func RenderPlan(cmds []command.Command, reused, cached int, noColor bool) string {
	return RenderTags(util.ComputeTags(command.Counts(cmds), reused, cached), noColor)
}
