package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

const warningText = "Numbers only!"

// Toolbar holds the widgets the game updates after the UI is built.
type Toolbar struct {
	Input   *widget.TextInput
	Warning *widget.Text
	Status  *widget.Text
	Pause   *widget.Container
}

func solidNineSlice(c color.Color) *imageui.NineSlice {
	return imageui.NewNineSliceColor(c)
}

// NewUI builds the toolbar along the top of the window and a centered pause
// panel that starts hidden.
func NewUI(g *Game, width, toolbarHeight int, warningColor color.Color) (*ebitenui.UI, *Toolbar) {
	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace

	tb := &Toolbar{}

	btnImg := &widget.ButtonImage{
		Idle:    solidNineSlice(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255}),
		Hover:   solidNineSlice(color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 255}),
		Pressed: solidNineSlice(color.NRGBA{R: 0x22, G: 0x22, B: 0x22, A: 255}),
	}
	btnTextColor := &widget.ButtonTextColor{Idle: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}}
	rowData := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})

	bar := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(solidNineSlice(color.NRGBA{R: 0xe0, G: 0xe0, B: 0xe0, A: 255})),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(8),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 3, Bottom: 3, Left: 6, Right: 6}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(width, toolbarHeight),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionStart,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
				StretchHorizontal:  true,
			}),
		),
	)

	bar.AddChild(widget.NewLabel(
		widget.LabelOpts.Text("Enter Velocity:", &face, &widget.LabelColor{Idle: color.Black, Disabled: color.Gray{Y: 140}}),
	))

	tb.Input = widget.NewTextInput(
		widget.TextInputOpts.WidgetOpts(widget.WidgetOpts.MinSize(100, toolbarHeight-8), rowData),
		widget.TextInputOpts.Image(&widget.TextInputImage{
			Idle:     solidNineSlice(color.RGBA{245, 245, 245, 255}),
			Disabled: solidNineSlice(color.RGBA{200, 200, 200, 255}),
		}),
		widget.TextInputOpts.Color(&widget.TextInputColor{Idle: color.Black, Disabled: color.Gray{Y: 120}, Caret: color.Black}),
		widget.TextInputOpts.Face(&face),
		widget.TextInputOpts.SubmitOnEnter(true),
		widget.TextInputOpts.SubmitHandler(func(args *widget.TextInputChangedEventArgs) {
			g.Throw(args.InputText)
		}),
	)
	bar.AddChild(tb.Input)

	bar.AddChild(widget.NewButton(
		widget.ButtonOpts.Image(btnImg),
		widget.ButtonOpts.Text("Throw", &face, btnTextColor),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(64, toolbarHeight-8), rowData),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			g.Throw(tb.Input.GetText())
		}),
	))
	bar.AddChild(widget.NewButton(
		widget.ButtonOpts.Image(btnImg),
		widget.ButtonOpts.Text("Refresh", &face, btnTextColor),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(64, toolbarHeight-8), rowData),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			g.Refresh()
		}),
	))

	tb.Warning = widget.NewText(
		widget.TextOpts.Text("", &face, warningColor),
		widget.TextOpts.WidgetOpts(rowData),
	)
	bar.AddChild(tb.Warning)

	tb.Status = widget.NewText(
		widget.TextOpts.Text("", &face, color.NRGBA{R: 0x40, G: 0x40, B: 0x40, A: 0xff}),
		widget.TextOpts.WidgetOpts(rowData),
	)
	bar.AddChild(tb.Status)

	tb.Pause = newPausePanel(g, &face, btnImg, btnTextColor)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(bar)
	root.AddChild(tb.Pause)

	return &ebitenui.UI{Container: root}, tb
}

// newPausePanel is the centered overlay shown while the simulation is paused.
func newPausePanel(g *Game, face *ebtext.Face, btnImg *widget.ButtonImage, btnTextColor *widget.ButtonTextColor) *widget.Container {
	center := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})

	title := widget.NewText(
		widget.TextOpts.Text("Paused", face, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}),
		widget.TextOpts.WidgetOpts(center),
	)

	resumeBtn := widget.NewButton(
		widget.ButtonOpts.Image(btnImg),
		widget.ButtonOpts.Text("Resume", face, btnTextColor),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(96, 24), center),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			g.SetPaused(false)
		}),
	)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(solidNineSlice(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200})),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
	panel.AddChild(title)
	panel.AddChild(resumeBtn)
	panel.GetWidget().Visibility = widget.Visibility_Hide

	return panel
}
