package main

import (
	"github.com/fatih/color"

	"github.com/rentzsch/smfp/internal/output"
)

func green(s string) string {
	c := color.New(color.FgHiGreen)
	if output.NoColor() {
		c.DisableColor()
	} else {
		c.EnableColor()
	}
	return c.SprintFunc()(s)
}

func red(s string) string {
	c := color.New(color.FgHiRed)
	if output.NoColor() {
		c.DisableColor()
	} else {
		c.EnableColor()
	}
	return c.SprintFunc()(s)
}
