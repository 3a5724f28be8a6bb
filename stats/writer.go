package stats

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

var ErrClosed = errors.New("batch writer is closed")

func compression() parquet.WriterOption {
	return parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression})
}

func batchName() string {
	return fmt.Sprintf("stats_%d.parquet", time.Now().UnixNano())
}

// BatchWriter streams rows into outDir/tmp and moves the finished file to
// outDir on Finalize, so readers never see a partial file.
type BatchWriter struct {
	outDir  string
	tmpPath string
	outPath string

	file   *os.File
	writer *parquet.GenericWriter[TickRow]

	rows int
	runs int
}

func NewBatchWriter(outDir string) (*BatchWriter, error) {
	if outDir == "" {
		return nil, fmt.Errorf("outDir is required")
	}
	absOut, err := filepath.Abs(outDir)
	if err != nil {
		absOut = outDir
	}
	tmpDir := filepath.Join(absOut, "tmp")
	if err := os.MkdirAll(tmpDir, 0o755); err != nil {
		return nil, fmt.Errorf("create tmp dir: %w", err)
	}

	name := batchName()
	tmpPath := filepath.Join(tmpDir, name)

	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open tmp parquet: %w", err)
	}

	w := parquet.NewGenericWriter[TickRow](f, compression())
	w.SetKeyValueMetadata("schema", SchemaName)

	return &BatchWriter{
		outDir:  absOut,
		tmpPath: tmpPath,
		outPath: filepath.Join(absOut, name),
		file:    f,
		writer:  w,
	}, nil
}

func (b *BatchWriter) TmpPath() string { return b.tmpPath }

func (b *BatchWriter) OutPath() string { return b.outPath }

func (b *BatchWriter) Rows() int { return b.rows }

func (b *BatchWriter) Runs() int { return b.runs }

func (b *BatchWriter) WriteRows(rows []TickRow) error {
	if b.writer == nil {
		return ErrClosed
	}
	if len(rows) == 0 {
		return nil
	}
	if _, err := b.writer.Write(rows); err != nil {
		return fmt.Errorf("write rows: %w", err)
	}
	b.rows += len(rows)
	return nil
}

// NoteRun counts a completed run towards this batch.
func (b *BatchWriter) NoteRun() { b.runs++ }

// Finalize closes the file and renames it into outDir. An empty batch is
// removed and reported with an empty path.
func (b *BatchWriter) Finalize() (outPath string, rows, runs int, err error) {
	if b.writer == nil && b.file == nil {
		return "", 0, 0, nil
	}
	rows, runs = b.rows, b.runs

	var closeErr, fileErr error
	if b.writer != nil {
		closeErr = b.writer.Close()
		b.writer = nil
	}
	if b.file != nil {
		_ = b.file.Sync()
		fileErr = b.file.Close()
		b.file = nil
	}
	if closeErr != nil {
		_ = os.Remove(b.tmpPath)
		return "", 0, 0, fmt.Errorf("close parquet writer: %w", closeErr)
	}
	if fileErr != nil {
		_ = os.Remove(b.tmpPath)
		return "", 0, 0, fmt.Errorf("close parquet file: %w", fileErr)
	}

	if rows == 0 {
		_ = os.Remove(b.tmpPath)
		return "", 0, 0, nil
	}
	if err := os.Rename(b.tmpPath, b.outPath); err != nil {
		return "", 0, 0, fmt.Errorf("rename parquet: %w", err)
	}
	return b.outPath, rows, runs, nil
}

// WriteBatchAtomic writes rows to a fresh stats file in outDir in one go.
func WriteBatchAtomic(outDir string, rows []TickRow) (string, error) {
	tmpDir := filepath.Join(outDir, "tmp")
	if err := os.MkdirAll(tmpDir, 0o755); err != nil {
		return "", fmt.Errorf("create tmp dir: %w", err)
	}

	name := batchName()
	finalPath := filepath.Join(outDir, name)
	tmpPath := filepath.Join(tmpDir, name+".tmp")
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows, compression(),
		parquet.KeyValueMetadata("schema", SchemaName),
	); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("write parquet: %w", err)
	}
	if err := os.Rename(tmpPath, finalPath); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("rename parquet: %w", err)
	}
	return finalPath, nil
}

// ReadFile loads every row of a stats file.
func ReadFile(path string) ([]TickRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, err
	}
	pf, err := parquet.OpenFile(f, st.Size())
	if err != nil {
		return nil, fmt.Errorf("open parquet: %w", err)
	}
	if v, ok := pf.Lookup("schema"); ok && v != SchemaName {
		return nil, fmt.Errorf("unexpected schema %q in %s", v, path)
	}

	reader := parquet.NewGenericReader[TickRow](pf)
	defer reader.Close()

	rows := make([]TickRow, reader.NumRows())
	total := 0
	for total < len(rows) {
		n, err := reader.Read(rows[total:])
		total += n
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read rows: %w", err)
		}
		if n == 0 {
			break
		}
	}
	return rows[:total], nil
}
