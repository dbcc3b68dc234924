// Package report builds the monthly recap: one row per achievement in the
// window joined to its person, plus the two fair-ranking leaderboards.
package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"team-portal/internal/service/aggregate"
	"team-portal/internal/storage"
)

// ErrBadMonth marks a month key that is not a valid YYYY-MM value.
var ErrBadMonth = errors.New("bad month key")

type SnapshotProvider interface {
	Snapshot(ctx context.Context, from, to string) (*storage.Snapshot, error)
}

type Service struct {
	storage SnapshotProvider
}

func NewService(storage SnapshotProvider) *Service {
	return &Service{storage: storage}
}

// MonthRange expands a YYYY-MM key into the half-open range
// [first day, first day of next month).
func MonthRange(month string) (from, to string, err error) {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return "", "", fmt.Errorf("%w %q: %v", ErrBadMonth, month, err)
	}
	return t.Format("2006-01-02"), t.AddDate(0, 1, 0).Format("2006-01-02"), nil
}

type Row struct {
	Date    string  `json:"date"`
	Name    string  `json:"name"`
	Role    string  `json:"role"`
	Unit    string  `json:"unit"`
	Product string  `json:"product"`
	Amount  float64 `json:"amount"`
}

type Recap struct {
	Month       string            `json:"month"`
	Rows        []Row             `json:"rows"`
	Mikro       []aggregate.Entry `json:"mikro"`
	Operasional []aggregate.Entry `json:"operasional"`
}

// BuildRecap joins every in-window achievement to its person and computes
// both leaderboards over the same window. Rows for a deleted person keep the
// raw person id, as the original export did.
func BuildRecap(snap *storage.Snapshot, month string) *Recap {
	persons := map[string]storage.Person{}
	for _, p := range snap.Persons {
		persons[p.ID] = p
	}

	rows := make([]Row, 0, len(snap.Achievements))
	for _, a := range snap.Achievements {
		row := Row{
			Date:    a.Date,
			Name:    a.PersonID,
			Role:    "-",
			Unit:    "-",
			Product: a.Product,
			Amount:  a.Amount,
		}
		if p, ok := persons[a.PersonID]; ok {
			row.Name = p.Name
			row.Role = p.Role
			row.Unit = string(p.Unit)
		}
		rows = append(rows, row)
	}

	mikro, operasional := aggregate.Leaderboard(snap)

	return &Recap{Month: month, Rows: rows, Mikro: mikro, Operasional: operasional}
}

func (s *Service) Recap(ctx context.Context, month string) (*Recap, error) {
	from, to, err := MonthRange(month)
	if err != nil {
		return nil, err
	}

	snap, err := s.storage.Snapshot(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("fetch snapshot: %w", err)
	}

	return BuildRecap(snap, month), nil
}

func fmtNum(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// WriteCSV serializes the recap: the row table first, then a leaderboard
// block per category separated by blank lines. encoding/csv handles quoting,
// numbers stay plain decimals.
func (r *Recap) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"Tanggal", "Nama", "Role", "Unit", "Produk", "Nilai"}); err != nil {
		return err
	}
	for _, row := range r.Rows {
		err := cw.Write([]string{row.Date, row.Name, row.Role, row.Unit, row.Product, fmtNum(row.Amount)})
		if err != nil {
			return err
		}
	}

	writeBoard := func(title string, entries []aggregate.Entry) error {
		if err := cw.Write([]string{""}); err != nil {
			return err
		}
		if err := cw.Write([]string{title}); err != nil {
			return err
		}
		if err := cw.Write([]string{"Rank", "Nama", "Role", "Score", "Total"}); err != nil {
			return err
		}
		for _, e := range entries {
			err := cw.Write([]string{
				strconv.Itoa(e.Rank), e.Name, e.Role, fmtNum(e.Score), fmtNum(e.Total),
			})
			if err != nil {
				return err
			}
		}
		return nil
	}

	if err := writeBoard("Leaderboard MIKRO", r.Mikro); err != nil {
		return err
	}
	if err := writeBoard("Leaderboard OPERASIONAL", r.Operasional); err != nil {
		return err
	}

	cw.Flush()
	return cw.Error()
}

// GenerateCSV returns the monthly recap as CSV bytes plus the download name.
func (s *Service) GenerateCSV(ctx context.Context, month string) ([]byte, string, error) {
	recap, err := s.Recap(ctx, month)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	if err := recap.WriteCSV(&buf); err != nil {
		return nil, "", fmt.Errorf("write csv: %w", err)
	}

	return buf.Bytes(), fmt.Sprintf("rekap_%s.csv", month), nil
}
