package main

import (
	"errors"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/kacebover/lumox/gui/controller"
	"github.com/kacebover/lumox/lookup"
)

// dorkPanel builds a search query from the target and an operator button and
// opens it in the browser
type dorkPanel struct {
	ctrl   *controller.LookupController
	window fyne.Window
	logger *zap.Logger

	entry   *widget.Entry
	buttons []*widget.Button
	output  *widget.Label

	content fyne.CanvasObject
}

func newDorkPanel(ctrl *controller.LookupController, window fyne.Window, logger *zap.Logger) *dorkPanel {
	p := &dorkPanel{
		ctrl:   ctrl,
		window: window,
		logger: logger,
	}

	title := widget.NewLabelWithStyle(lookup.InputLabel(lookup.KindDork), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})

	p.entry = widget.NewEntry()
	p.entry.SetPlaceHolder(lookup.Placeholder(lookup.KindDork))
	p.entry.OnSubmitted = func(string) { p.onOperator(lookup.OpSite) }

	buttons := container.NewHBox()
	for _, op := range lookup.Operators() {
		op := op
		btn := widget.NewButton(strings.ToUpper(string(op)), func() { p.onOperator(op) })
		p.buttons = append(p.buttons, btn)
		buttons.Add(btn)
	}

	p.output = widget.NewLabel("")
	p.output.Wrapping = fyne.TextWrapWord

	ctrl.SetOnStateChange(p.setState)
	ctrl.SetOnComplete(func(c controller.Completion) {
		p.output.SetText(c.Result.Render())
	})

	p.content = container.NewBorder(
		container.NewPadded(container.NewVBox(title, p.entry, container.NewCenter(buttons))),
		nil, nil, nil,
		container.NewPadded(p.output),
	)
	return p
}

// onOperator handles an operator button. The filetype operator asks for the
// file type first.
func (p *dorkPanel) onOperator(op lookup.Operator) {
	term := lookup.NormalizeInput(p.entry.Text, p.entry.PlaceHolder)
	if term == "" {
		return
	}

	if op != lookup.OpFiletype {
		p.run(op, term, "")
		return
	}

	fileType := widget.NewEntry()
	fileType.SetPlaceHolder("pdf")
	dialog.ShowForm("Filetype", "Search", "Cancel",
		[]*widget.FormItem{widget.NewFormItem("Enter file type", fileType)},
		func(ok bool) {
			if ok && strings.TrimSpace(fileType.Text) != "" {
				p.run(op, term, fileType.Text)
			}
		}, p.window)
}

func (p *dorkPanel) run(op lookup.Operator, term, fileType string) {
	query, err := lookup.BuildDork(op, term, fileType)
	if err != nil {
		p.logger.Debug("Dork not built", zap.String("operator", string(op)), zap.Error(err))
		return
	}
	if _, err := p.ctrl.Submit(query); err != nil && !errors.Is(err, controller.ErrBusy) {
		p.output.SetText("Error: " + err.Error())
	}
}

func (p *dorkPanel) setState(s lookup.State) {
	for _, btn := range p.buttons {
		if s == lookup.Running {
			btn.Disable()
		} else {
			btn.Enable()
		}
	}
}
