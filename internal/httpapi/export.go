package httpapi

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/Leganyst/saas-store/internal/calendar"
	"github.com/Leganyst/saas-store/internal/service"
	"github.com/Leganyst/saas-store/internal/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var retouchExportHeader = []string{"Cliente", "Teléfono", "Servicio", "Próximo retoque", "Días restantes"}

// buildRetouchWorkbook строит лист «Retoques» со строками в порядке выдачи.
func buildRetouchWorkbook(rows []service.CustomerRetouchSummary) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Retoques"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	if err := f.SetSheetRow(sheet, "A1", &retouchExportHeader); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", "E1", bold); err != nil {
		return nil, fmt.Errorf("style header: %w", err)
	}
	if err := f.SetColWidth(sheet, "A", "A", 30); err != nil {
		return nil, fmt.Errorf("set width: %w", err)
	}
	if err := f.SetColWidth(sheet, "B", "E", 18); err != nil {
		return nil, fmt.Errorf("set width: %w", err)
	}

	for i, r := range rows {
		row := []any{r.Name, r.Phone, "", "", ""}
		if r.RetouchServiceName != nil {
			row[2] = *r.RetouchServiceName
		}
		if r.NextRetouchDate != nil {
			row[3] = utils.FormatISODate(*r.NextRetouchDate)
		}
		if r.DaysUntilRetouch != nil {
			row[4] = *r.DaysUntilRetouch
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *Server) exportRetouchCustomers(c *gin.Context) {
	tenant := tenantFrom(c)

	// выгружаем всех клиентов, страницами по MaxPageLimit
	var rows []service.CustomerRetouchSummary
	for offset := 0; ; offset += calendar.MaxPageLimit {
		page, err := s.retouch.GetCustomersByRetouchDate(c.Request.Context(), tenant.ID, calendar.MaxPageLimit, offset)
		if err != nil {
			writeError(c, s.log, err)
			return
		}
		rows = append(rows, page...)
		if len(page) < calendar.MaxPageLimit {
			break
		}
	}

	data, err := buildRetouchWorkbook(rows)
	if err != nil {
		writeError(c, s.log, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="retoques-%s.xlsx"`, tenant.Slug))
	c.Data(http.StatusOK, xlsxContentType, data)
}
