package officer

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/mahfuzhasan/officer-registry/internal/audit"
	"github.com/mahfuzhasan/officer-registry/internal/privacy"
)

const exportBatchSize = 200

// ExportCSV streams the directory as CSV with the same per-field policy
// as the detailed read: every row is a detailed render for the calling
// actor, so restricted fields are audited per row and a redacted field
// becomes an empty cell. An audit failure aborts the whole export.
func (s *Service) ExportCSV(actor privacy.Actor, w io.Writer, meta audit.RequestMeta) error {
	writer := csv.NewWriter(w)

	header := append([]string{"id"}, privacy.Fields()...)
	if err := writer.Write(header); err != nil {
		return err
	}

	offset := 0
	rows := 0
	for {
		officers, err := s.repo.GetAll(exportBatchSize, offset)
		if err != nil {
			s.logger.Error("export batch failed", "error", err, "offset", offset)
			return err
		}
		if len(officers) == 0 {
			break
		}

		for _, o := range officers {
			record, err := s.Render(actor, o, meta)
			if err != nil {
				return err
			}

			row := make([]string, 0, len(header))
			row = append(row, strconv.FormatInt(o.ID, 10))
			for _, field := range privacy.Fields() {
				if v, ok := record[field]; ok {
					row = append(row, v.(string))
				} else {
					row = append(row, "")
				}
			}
			if err := writer.Write(row); err != nil {
				return err
			}
			rows++
		}

		offset += exportBatchSize
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}

	s.logger.Info("directory export completed",
		"accessor_id", actor.ID,
		"rows", rows,
		"request_id", meta.RequestID)
	return nil
}
