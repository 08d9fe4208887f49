package main

import (
	"errors"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/kacebover/lumox/gui/controller"
	"github.com/kacebover/lumox/lookup"
)

const lookingUp = "Looking up..."

// lookupPanel is one lookup tab: entry, button and result area
type lookupPanel struct {
	kind   lookup.Kind
	ctrl   *controller.LookupController
	logger *zap.Logger

	entry  *widget.Entry
	button *widget.Button
	output *widget.Label

	content fyne.CanvasObject
}

func newLookupPanel(ctrl *controller.LookupController, logger *zap.Logger) *lookupPanel {
	p := &lookupPanel{
		kind:   ctrl.Kind(),
		ctrl:   ctrl,
		logger: logger,
	}

	title := widget.NewLabelWithStyle(lookup.InputLabel(p.kind), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})

	p.entry = widget.NewEntry()
	p.entry.SetPlaceHolder(lookup.Placeholder(p.kind))
	p.entry.OnSubmitted = func(string) { p.submit() }

	p.button = widget.NewButton("Lookup", p.submit)
	p.button.Importance = widget.HighImportance

	p.output = widget.NewLabel("")
	p.output.Wrapping = fyne.TextWrapWord
	p.output.TextStyle = fyne.TextStyle{Monospace: true}
	p.output.Selectable = true

	ctrl.SetOnStateChange(p.setState)
	ctrl.SetOnComplete(func(c controller.Completion) {
		p.output.SetText(c.Result.Render())
	})

	top := container.NewVBox(
		title,
		p.entry,
		container.NewHBox(p.button),
	)
	p.content = container.NewBorder(
		container.NewPadded(top), nil, nil, nil,
		container.NewVScroll(container.NewPadded(p.output)),
	)
	return p
}

func (p *lookupPanel) submit() {
	input := lookup.NormalizeInput(p.entry.Text, p.entry.PlaceHolder)
	if _, err := p.ctrl.Submit(input); err != nil {
		// Empty input and re-submission while busy are silent
		if !errors.Is(err, lookup.ErrEmptyInput) && !errors.Is(err, controller.ErrBusy) {
			p.output.SetText("Error: " + err.Error())
		}
		p.logger.Debug("Submission ignored", zap.String("module", string(p.kind)), zap.Error(err))
	}
}

func (p *lookupPanel) setState(s lookup.State) {
	if s == lookup.Running {
		p.button.Disable()
		p.output.SetText(lookingUp)
		return
	}
	p.button.Enable()
}
