package registry

import "github.com/vovakirdan/whereisit/internal/core"

func init() {
	Register(Icon{
		ID:    "dog",
		Title: "Dog",
		Art: []string{
			`  __      _ `,
			`o'')}____// `,
			` '_/      ) `,
			` (_(_/-(_/  `,
		},
		Color: core.ColorBrown,
		Tone:  392,
	})
	Register(Icon{
		ID:    "ball",
		Title: "Ball",
		Art: []string{
			` .--. `,
			`/ () \`,
			`\    /`,
			` '--' `,
		},
		Color: core.ColorRed,
		Tone:  523.25,
	})
	Register(Icon{
		ID:    "cat",
		Title: "Cat",
		Art: []string{
			` /\_/\ `,
			`( o.o )`,
			` > ^ < `,
		},
		Color: core.ColorOrange,
		Tone:  440,
	})
	Register(Icon{
		ID:    "car",
		Title: "Car",
		Art: []string{
			`   ____     `,
			` _/__|_\___ `,
			`|  _     _ |`,
			`'-(_)---(_)'`,
		},
		Color: core.ColorBlue,
		Tone:  293.66,
	})
	Register(Icon{
		ID:    "nose",
		Title: "Nose",
		Art: []string{
			`  (  `,
			`   ) `,
			`  (_)`,
		},
		Color: core.ColorPink,
		Tone:  659.25,
	})
	Register(Icon{
		ID:    "feet",
		Title: "Feet",
		Art: []string{
			` _    _ `,
			`( )  ( )`,
			`|_|  |_|`,
			`ooo  ooo`,
		},
		Color: core.ColorYellow,
		Tone:  349.23,
	})
}
