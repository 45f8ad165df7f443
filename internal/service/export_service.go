package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

var (
	ErrExportNoActivePlan = errors.New("user has no active lernplan")
	ErrExportGenerateFail = errors.New("generating export file failed")
)

// icsWeekdays maps the overview weekday labels to iCalendar BYDAY codes
// and Go weekdays.
var icsWeekdays = map[string]struct {
	byday   string
	weekday time.Weekday
}{
	"Montags":     {"MO", time.Monday},
	"Dienstags":   {"TU", time.Tuesday},
	"Mittwochs":   {"WE", time.Wednesday},
	"Donnerstags": {"TH", time.Thursday},
	"Freitags":    {"FR", time.Friday},
	"Samstags":    {"SA", time.Saturday},
	"Sonntags":    {"SU", time.Sunday},
}

// ExportService renders the user's active weekly plan as a calendar or
// spreadsheet file.
type ExportService interface {
	// ExportWeeklyPlanICS exports the active plan as weekly recurring
	// iCalendar events. Days without a resolvable session are skipped.
	ExportWeeklyPlanICS(ctx context.Context, username string) (*bytes.Buffer, string, error)
	// ExportWeeklyPlanXLSX exports the active plan as a spreadsheet with
	// one row per day.
	ExportWeeklyPlanXLSX(ctx context.Context, username string) (*bytes.Buffer, string, error)
}

type exportService struct {
	lernplaene LernplanService
	logger     *zap.Logger
	now        func() time.Time
}

// NewExportService creates the ExportService.
func NewExportService(lernplaene LernplanService, logger *zap.Logger) ExportService {
	return &exportService{lernplaene: lernplaene, logger: logger, now: time.Now}
}

func (s *exportService) ExportWeeklyPlanICS(ctx context.Context, username string) (*bytes.Buffer, string, error) {
	overview, err := s.lernplaene.CollectWeeklyOverview(ctx, username)
	if err != nil {
		return nil, "", err
	}
	if overview == nil {
		return nil, "", ErrExportNoActivePlan
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//studyhuppy//track//DE")

	now := s.now()
	for _, tag := range overview.Tage {
		wd, ok := icsWeekdays[tag.Wochentag]
		if !ok || tag.SessionID == "" {
			continue
		}
		start, err := firstOccurrence(now, wd.weekday, tag.Beginn)
		if err != nil {
			continue
		}

		duration := 0
		for _, b := range tag.Blocks {
			duration += b.LernzeitSeconds + b.PausenzeitSeconds
		}
		if duration == 0 {
			duration = 3600
		}

		event := cal.AddEvent(uuid.NewString())
		event.SetDtStampTime(now)
		event.SetStartAt(start)
		event.SetEndAt(start.Add(time.Duration(duration) * time.Second))
		event.SetSummary(tag.Titel)
		event.SetDescription(overview.Titel)
		event.AddRrule(fmt.Sprintf("FREQ=WEEKLY;BYDAY=%s", wd.byday))
	}

	buf := bytes.NewBufferString(cal.Serialize())
	filename := fmt.Sprintf("lernplan_%s.ics", username)
	return buf, filename, nil
}

// firstOccurrence returns the next date (today included) falling on the
// weekday, at the given HH:MM start time.
func firstOccurrence(now time.Time, weekday time.Weekday, beginn string) (time.Time, error) {
	start, err := time.Parse("15:04", beginn)
	if err != nil {
		return time.Time{}, err
	}
	daysAhead := (int(weekday) - int(now.Weekday()) + 7) % 7
	day := now.AddDate(0, 0, daysAhead)
	return time.Date(day.Year(), day.Month(), day.Day(),
		start.Hour(), start.Minute(), 0, 0, now.Location()), nil
}

func (s *exportService) ExportWeeklyPlanXLSX(ctx context.Context, username string) (*bytes.Buffer, string, error) {
	overview, err := s.lernplaene.CollectWeeklyOverview(ctx, username)
	if err != nil {
		return nil, "", err
	}
	if overview == nil {
		return nil, "", ErrExportNoActivePlan
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Lernplan"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheet, "A", "A", 14)
	f.SetColWidth(sheet, "B", "B", 8)
	f.SetColWidth(sheet, "C", "C", 28)
	f.SetColWidth(sheet, "D", "E", 14)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	f.SetCellValue(sheet, "A1", overview.Titel)
	f.MergeCell(sheet, "A1", "E1")
	f.SetCellStyle(sheet, "A1", "A1", headerStyle)

	headers := []string{"Tag", "Beginn", "Session", "Lernzeit (min)", "Pause (min)"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	row := 3
	for _, tag := range overview.Tage {
		f.SetCellValue(sheet, cellName(1, row), tag.Wochentag)
		f.SetCellValue(sheet, cellName(2, row), tag.Beginn)

		titel := "-"
		lernzeit, pause := 0, 0
		if tag.SessionID != "" {
			titel = tag.Titel
			for _, b := range tag.Blocks {
				lernzeit += b.LernzeitSeconds
				pause += b.PausenzeitSeconds
			}
		}
		f.SetCellValue(sheet, cellName(3, row), titel)
		f.SetCellValue(sheet, cellName(4, row), lernzeit/60)
		f.SetCellValue(sheet, cellName(5, row), pause/60)
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("writing xlsx failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("lernplan_%s.xlsx", username)
	return buf, filename, nil
}

func cellName(col, row int) string {
	cell, _ := excelize.CoordinatesToCellName(col, row)
	return cell
}
