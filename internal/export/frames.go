package export

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sync"
)

// bufferPool lets concurrent encoders reuse their scratch buffers.
type bufferPool struct {
	pool sync.Pool
}

func (p *bufferPool) Get() *png.EncoderBuffer {
	b, _ := p.pool.Get().(*png.EncoderBuffer)
	return b
}

func (p *bufferPool) Put(b *png.EncoderBuffer) {
	p.pool.Put(b)
}

type frameJob struct {
	name string
	img  image.Image
}

// frameWriter encodes PNG frames on a fixed set of workers. Images handed to
// Write must not be modified afterwards.
type frameWriter struct {
	enc  png.Encoder
	jobs chan frameJob
	wg   sync.WaitGroup

	mu  sync.Mutex
	err error

	once     sync.Once
	closeErr error
}

func newFrameWriter(workers int) *frameWriter {
	workers = max(1, workers)
	w := &frameWriter{
		enc:  png.Encoder{CompressionLevel: png.BestSpeed, BufferPool: &bufferPool{}},
		jobs: make(chan frameJob, workers),
	}
	for range workers {
		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			for j := range w.jobs {
				w.fail(w.encode(j))
			}
		}()
	}
	return w
}

func (w *frameWriter) encode(j frameJob) error {
	f, err := os.Create(j.name)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := w.enc.Encode(f, j.img); err != nil {
		f.Close()
		return fmt.Errorf("export: encode %s: %w", filepath.Base(j.name), err)
	}
	return f.Close()
}

func (w *frameWriter) fail(err error) {
	if err == nil {
		return
	}
	w.mu.Lock()
	if w.err == nil {
		w.err = err
	}
	w.mu.Unlock()
}

// Err returns the first encoding error seen so far.
func (w *frameWriter) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}

func (w *frameWriter) Write(name string, img image.Image) {
	w.jobs <- frameJob{name: name, img: img}
}

// Close waits for queued frames and returns the first error. It is safe to
// call more than once.
func (w *frameWriter) Close() error {
	w.once.Do(func() {
		close(w.jobs)
		w.wg.Wait()
		w.closeErr = w.Err()
	})
	return w.closeErr
}
