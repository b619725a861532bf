package report

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/lckh-guru/lckh-backend-go/internal/domain/report"
	"github.com/lckh-guru/lckh-backend-go/internal/pkg/storage"
	"github.com/xuri/excelize/v2"
)

const (
	dailySheet   = "Harian"
	monthlySheet = "Bulanan"
)

// ExcelRenderer writes the laporan as a workbook with a daily and a monthly sheet
type ExcelRenderer struct {
	storage     storage.FileStorage
	defaultCity string
}

// NewExcelRenderer creates the renderer; files may be nil, in which case
// signature images are left out of the workbook.
func NewExcelRenderer(files storage.FileStorage, defaultCity string) *ExcelRenderer {
	return &ExcelRenderer{storage: files, defaultCity: defaultCity}
}

// sheetWriter keeps the first excelize error so cells can be written without
// checking every call
type sheetWriter struct {
	f     *excelize.File
	sheet string
	err   error
}

func (w *sheetWriter) set(col string, row int, value interface{}) {
	if w.err != nil {
		return
	}
	w.err = w.f.SetCellValue(w.sheet, cellName(col, row), value)
}

func (w *sheetWriter) merge(fromCol string, fromRow int, toCol string, toRow int) {
	if w.err != nil {
		return
	}
	w.err = w.f.MergeCell(w.sheet, cellName(fromCol, fromRow), cellName(toCol, toRow))
}

func (w *sheetWriter) style(fromCol string, fromRow int, toCol string, toRow int, styleID int) {
	if w.err != nil {
		return
	}
	w.err = w.f.SetCellStyle(w.sheet, cellName(fromCol, fromRow), cellName(toCol, toRow), styleID)
}

func cellName(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

type excelStyles struct {
	title  int
	header int
	border int
	center int
	bold   int
}

func newExcelStyles(f *excelize.File) (excelStyles, error) {
	var s excelStyles
	var err error
	borders := []excelize.Border{
		{Type: "left", Color: "#000000", Style: 1},
		{Type: "top", Color: "#000000", Style: 1},
		{Type: "right", Color: "#000000", Style: 1},
		{Type: "bottom", Color: "#000000", Style: 1},
	}

	if s.title, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14, Family: "Times New Roman"},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	}); err != nil {
		return s, err
	}
	if s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Family: "Times New Roman"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#F0F0F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    borders,
	}); err != nil {
		return s, err
	}
	if s.border, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Family: "Times New Roman"},
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
		Border:    borders,
	}); err != nil {
		return s, err
	}
	if s.center, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Family: "Times New Roman"},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "top", WrapText: true},
		Border:    borders,
	}); err != nil {
		return s, err
	}
	if s.bold, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Family: "Times New Roman"},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	}); err != nil {
		return s, err
	}
	return s, nil
}

// Render builds the workbook with the daily log and recap sheets
func (r *ExcelRenderer) Render(ctx context.Context, m report.MonthlyReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(dailySheet); err != nil {
		return nil, fmt.Errorf("%w: %v", report.ErrRenderFailed, err)
	}
	if _, err := f.NewSheet(monthlySheet); err != nil {
		return nil, fmt.Errorf("%w: %v", report.ErrRenderFailed, err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("%w: %v", report.ErrRenderFailed, err)
	}
	idx, err := f.GetSheetIndex(dailySheet)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", report.ErrRenderFailed, err)
	}
	f.SetActiveSheet(idx)

	styles, err := newExcelStyles(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", report.ErrRenderFailed, err)
	}

	images := r.loadImages(ctx, m)

	if err := r.writeDaily(f, styles, m, images); err != nil {
		return nil, fmt.Errorf("%w: %v", report.ErrRenderFailed, err)
	}
	if err := r.writeMonthly(f, styles, m, images); err != nil {
		return nil, fmt.Errorf("%w: %v", report.ErrRenderFailed, err)
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("%w: %v", report.ErrRenderFailed, err)
	}
	return buf.Bytes(), nil
}

func (r *ExcelRenderer) writeDaily(f *excelize.File, s excelStyles, m report.MonthlyReport, images signatureImages) error {
	w := &sheetWriter{f: f, sheet: dailySheet}
	for col, width := range map[string]float64{"A": 6, "B": 16, "C": 40, "D": 30, "E": 8, "F": 12} {
		if err := f.SetColWidth(dailySheet, col, col, width); err != nil {
			return err
		}
	}

	w.set("A", 1, "LAPORAN CAPAIAN KINERJA HARIAN")
	w.merge("A", 1, "F", 1)
	w.style("A", 1, "F", 1, s.title)
	w.set("A", 2, "PEGAWAI NEGERI SIPIL KEMENTERIAN AGAMA")
	w.merge("A", 2, "F", 2)
	w.style("A", 2, "F", 2, s.title)

	row := 4
	for _, info := range [][2]string{
		{"NAMA", m.Identity.Name},
		{"NIP", m.Identity.NIP},
		{"JABATAN", m.Identity.Position},
		{"UNIT KERJA", m.Identity.WorkUnit},
		{"UNIT ORGANISASI", m.Identity.OrgUnit},
		{"BULAN", strings.ToUpper(m.MonthName) + " " + fmt.Sprint(m.Year)},
	} {
		w.set("A", row, info[0])
		w.merge("A", row, "B", row)
		w.set("C", row, ": "+dashIfEmpty(info[1]))
		row++
	}

	row++
	headerRow := row
	for col, title := range map[string]string{"A": "NO", "B": "TANGGAL", "C": "KEGIATAN", "D": "OUTPUT", "E": "VOL", "F": "SATUAN"} {
		w.set(col, headerRow, title)
	}
	w.style("A", headerRow, "F", headerRow, s.header)
	row++

	if len(m.Days) == 0 {
		w.set("A", row, "Tidak ada data")
		w.merge("A", row, "F", row)
		w.style("A", row, "F", row, s.center)
		row++
	}
	for i, day := range m.Days {
		first := row
		for _, item := range day.Rows {
			w.set("C", row, item.Description)
			w.set("D", row, item.Output)
			if !item.Volume.IsZero() {
				w.set("E", row, item.Volume.InexactFloat64())
			}
			w.set("F", row, item.Unit)
			row++
		}
		last := row - 1
		w.set("A", first, i+1)
		w.set("B", first, day.DayName+"\n"+day.DisplayDate)
		if last > first {
			w.merge("A", first, "A", last)
			w.merge("B", first, "B", last)
		}
		w.style("A", first, "B", last, s.center)
		w.style("C", first, "D", last, s.border)
		w.style("E", first, "F", last, s.center)
	}
	if w.err != nil {
		return w.err
	}

	return r.writeSignatures(w, s, m, images, row+2, "B", "D")
}

func (r *ExcelRenderer) writeMonthly(f *excelize.File, s excelStyles, m report.MonthlyReport, images signatureImages) error {
	w := &sheetWriter{f: f, sheet: monthlySheet}
	for col, width := range map[string]float64{"A": 6, "B": 46, "C": 10, "D": 24} {
		if err := f.SetColWidth(monthlySheet, col, col, width); err != nil {
			return err
		}
	}

	w.set("A", 1, "LAPORAN KINERJA BULANAN")
	w.merge("A", 1, "D", 1)
	w.style("A", 1, "D", 1, s.title)
	w.set("A", 2, "BULAN "+strings.ToUpper(m.MonthName)+" "+fmt.Sprint(m.Year))
	w.merge("A", 2, "D", 2)
	w.style("A", 2, "D", 2, s.title)

	row := 4
	for _, info := range [][2]string{
		{"NAMA", m.Identity.Name},
		{"JABATAN", m.Identity.Position},
		{"UNIT KERJA", m.Identity.WorkUnit},
	} {
		w.set("A", row, info[0])
		w.merge("A", row, "B", row)
		w.set("C", row, ": "+dashIfEmpty(info[1]))
		row++
	}

	row++
	for col, title := range map[string]string{"A": "No", "B": "Uraian Tugas / Kegiatan", "C": "Volume", "D": "Bukti Dukung"} {
		w.set(col, row, title)
	}
	w.style("A", row, "D", row, s.header)
	row++

	first := row
	for _, rc := range m.Recap {
		w.set("A", row, rc.No)
		w.set("B", row, rc.Category)
		if rc.Volume != nil {
			w.set("C", row, rc.Volume.InexactFloat64())
		} else {
			w.set("C", row, "-")
		}
		w.set("D", row, rc.BuktiDokumen)
		row++
	}
	if row > first {
		w.style("A", first, "A", row-1, s.center)
		w.style("B", first, "B", row-1, s.border)
		w.style("C", first, "C", row-1, s.center)
		w.style("D", first, "D", row-1, s.border)
	}
	if w.err != nil {
		return w.err
	}

	return r.writeSignatures(w, s, m, images, row+2, "B", "D")
}

// writeSignatures writes the pengesahan block: principal on the left, teacher on the right
func (r *ExcelRenderer) writeSignatures(w *sheetWriter, s excelStyles, m report.MonthlyReport, images signatureImages, row int, leftCol, rightCol string) error {
	w.set(rightCol, row, signOffLine(m, r.defaultCity))
	w.set(leftCol, row+1, "Atasan Langsung")
	w.set(rightCol, row+1, "Pegawai yang Dinilai,")
	w.style(leftCol, row+1, leftCol, row+1, s.bold)
	w.style(rightCol, row+1, rightCol, row+1, s.bold)
	if w.err != nil {
		return w.err
	}

	imageRow := row + 2
	if images.stamp != nil {
		w.addPicture(leftCol, imageRow, images.stamp)
	}
	if images.principal != nil {
		w.addPicture(leftCol, imageRow, images.principal)
	}
	if images.teacher != nil {
		w.addPicture(rightCol, imageRow, images.teacher)
	}

	nameRow := row + 7
	principalName := m.School.PrincipalName
	if principalName == "" {
		principalName = "Nama Kepala Sekolah"
	}
	w.set(leftCol, nameRow, principalName)
	w.set(leftCol, nameRow+1, "NIP. "+dashIfEmpty(m.School.PrincipalNIP))
	w.set(rightCol, nameRow, dashIfEmpty(m.Identity.Name))
	w.set(rightCol, nameRow+1, "NIP. "+dashIfEmpty(m.Identity.NIP))
	w.style(leftCol, nameRow, leftCol, nameRow, s.bold)
	w.style(rightCol, nameRow, rightCol, nameRow, s.bold)
	return w.err
}

func (w *sheetWriter) addPicture(col string, row int, img *excelize.Picture) {
	if w.err != nil {
		return
	}
	pic := *img
	w.err = w.f.AddPictureFromBytes(w.sheet, cellName(col, row), &pic)
}

type signatureImages struct {
	teacher   *excelize.Picture
	principal *excelize.Picture
	stamp     *excelize.Picture
}

// loadImages fetches the stored signature and stamp images. A missing or
// unreadable image only drops that picture from the workbook.
func (r *ExcelRenderer) loadImages(ctx context.Context, m report.MonthlyReport) signatureImages {
	var images signatureImages
	if r.storage == nil {
		return images
	}
	images.teacher = r.loadImage(ctx, m.Identity.SignaturePath, 0.35)
	images.principal = r.loadImage(ctx, m.School.PrincipalSignaturePath, 0.35)
	images.stamp = r.loadImage(ctx, m.School.StampPath, 0.5)
	return images
}

func (r *ExcelRenderer) loadImage(ctx context.Context, path *string, scale float64) *excelize.Picture {
	if path == nil || *path == "" {
		return nil
	}
	rc, err := r.storage.Download(ctx, *path)
	if err != nil {
		slog.Warn("Report image unavailable", "path", *path, "error", err)
		return nil
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		slog.Warn("Report image unreadable", "path", *path, "error", err)
		return nil
	}
	return &excelize.Picture{
		Extension: strings.ToLower(filepath.Ext(*path)),
		File:      data,
		Format: &excelize.GraphicOptions{
			ScaleX:          scale,
			ScaleY:          scale,
			LockAspectRatio: true,
		},
	}
}

func dashIfEmpty(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
