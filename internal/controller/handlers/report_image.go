package handlers

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/vpetrenko/smena_bot/internal/model"
	"golang.org/x/image/font/basicfont"
)

// Константы размеров и отступов
const (
	imageWidth     = 1200
	headerHeight   = 70
	rowHeight      = 44
	footerHeight   = 30
	leftLabelWidth = 230
	rightPadding   = 30
	barRadius      = 6.0
	minutesPerDay  = 24 * 60
)

// Цветовая схема
var (
	bgColor        = color.RGBA{245, 246, 248, 255}
	titleColor     = color.RGBA{60, 64, 70, 255}
	labelColor     = color.RGBA{80, 85, 90, 220}
	hourLineColor  = color.RGBA{205, 207, 210, 255}
	hourLabelColor = color.RGBA{110, 115, 120, 200}
	rowEvenColor   = color.RGBA{238, 239, 241, 255}

	barActiveColor    = color.RGBA{133, 193, 85, 230}
	barCompletedColor = color.RGBA{120, 160, 220, 230}
	barCanceledColor  = color.RGBA{158, 158, 158, 160}
	barTextColor      = color.RGBA{20, 24, 28, 255}
)

// RenderDayImage рисует таймлайн дня: одна строка на смену, ось часов
// 00-24, цвет полосы по статусу. Возвращает PNG.
func RenderDayImage(date string, shifts []*model.Shift) ([]byte, error) {
	height := headerHeight + rowHeight*len(shifts) + footerHeight

	dc := gg.NewContext(imageWidth, height)
	dc.SetFontFace(basicfont.Face7x13)

	dc.SetColor(bgColor)
	dc.Clear()

	dc.SetColor(titleColor)
	dc.DrawStringAnchored(fmt.Sprintf("Смены на %s", date), imageWidth/2, headerHeight/2-8, 0.5, 0.5)

	timelineWidth := float64(imageWidth - leftLabelWidth - rightPadding)
	timelineTop := float64(headerHeight)
	timelineBottom := float64(headerHeight + rowHeight*len(shifts))

	// Сетка часов с подписями каждые 2 часа
	for hour := 0; hour <= 24; hour++ {
		x := float64(leftLabelWidth) + timelineWidth*float64(hour)/24

		dc.SetColor(hourLineColor)
		dc.SetLineWidth(1)
		dc.DrawLine(x, timelineTop, x, timelineBottom)
		dc.Stroke()

		if hour%2 == 0 {
			dc.SetColor(hourLabelColor)
			dc.DrawStringAnchored(fmt.Sprintf("%02d", hour), x, timelineTop-10, 0.5, 0.5)
		}
	}

	for i, s := range shifts {
		rowTop := timelineTop + float64(i*rowHeight)

		if i%2 == 0 {
			dc.SetColor(rowEvenColor)
			dc.DrawRectangle(0, rowTop, leftLabelWidth, rowHeight)
			dc.Fill()
		}

		dc.SetColor(labelColor)
		dc.DrawStringAnchored(s.FullName, 12, rowTop+rowHeight/2, 0, 0.5)

		start, ok := model.MinutesOfDay(s.StartTime)
		if !ok {
			continue
		}
		end, ok := model.MinutesOfDay(s.EndTime)
		if !ok {
			continue
		}

		x := float64(leftLabelWidth) + timelineWidth*float64(start)/minutesPerDay
		w := timelineWidth * float64(end-start) / minutesPerDay

		dc.SetColor(barColor(s.Status))
		dc.DrawRoundedRectangle(x, rowTop+8, w, rowHeight-16, barRadius)
		dc.Fill()

		dc.SetColor(barTextColor)
		dc.DrawStringAnchored(
			fmt.Sprintf("%s-%s %s", s.StartTime, s.EndTime, s.Zone),
			x+w/2, rowTop+rowHeight/2, 0.5, 0.5,
		)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode report image: %w", err)
	}

	return buf.Bytes(), nil
}

func barColor(status model.ShiftStatus) color.RGBA {
	switch status {
	case model.ShiftStatusCompleted:
		return barCompletedColor
	case model.ShiftStatusCanceled:
		return barCanceledColor
	}
	return barActiveColor
}
