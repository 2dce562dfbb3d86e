package otoaudio

import (
	"io"
	"sync"
	"testing"
)

func TestRingBuffer_BasicWriteRead(t *testing.T) {
	rb := NewRingBuffer(16)
	rb.Write([]byte{1, 2, 3, 4, 5})

	if got := rb.Buffered(); got != 5 {
		t.Fatalf("expected 5 buffered bytes, got %d", got)
	}

	out := make([]byte, 5)
	n, err := rb.Read(out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 5 {
		t.Fatalf("expected 5 bytes read, got %d", n)
	}
	for i, b := range []byte{1, 2, 3, 4, 5} {
		if out[i] != b {
			t.Fatalf("byte %d: expected %d, got %d", i, b, out[i])
		}
	}
}

func TestRingBuffer_Overflow(t *testing.T) {
	rb := NewRingBuffer(8)
	rb.Write([]byte{1, 2, 3, 4, 5, 6})
	rb.Write([]byte{7, 8, 9, 10, 11})

	if got := rb.Buffered(); got != 8 {
		t.Fatalf("expected 8 buffered bytes, got %d", got)
	}
	out := make([]byte, 8)
	n, _ := rb.Read(out)
	expected := []byte{4, 5, 6, 7, 8, 9, 10, 11}
	if n != 8 {
		t.Fatalf("expected 8 bytes, got %d", n)
	}
	for i, b := range expected {
		if out[i] != b {
			t.Fatalf("byte %d: expected %d, got %d", i, b, out[i])
		}
	}
}

func TestRingBuffer_WrapAround(t *testing.T) {
	rb := NewRingBuffer(8)
	rb.Write([]byte{1, 2, 3, 4, 5, 6})

	out := make([]byte, 4)
	rb.Read(out)

	rb.Write([]byte{7, 8, 9, 10, 11})

	if got := rb.Buffered(); got != 7 {
		t.Fatalf("expected 7 buffered, got %d", got)
	}
	out = make([]byte, 7)
	n, _ := rb.Read(out)
	expected := []byte{5, 6, 7, 8, 9, 10, 11}
	if n != 7 {
		t.Fatalf("expected 7 bytes, got %d", n)
	}
	for i, b := range expected {
		if out[i] != b {
			t.Fatalf("byte %d: expected %d, got %d", i, b, out[i])
		}
	}
}

func TestRingBuffer_Clear(t *testing.T) {
	rb := NewRingBuffer(16)
	rb.Write([]byte{1, 2, 3, 4})
	rb.Clear()
	if got := rb.Buffered(); got != 0 {
		t.Fatalf("expected 0 buffered after clear, got %d", got)
	}
}

func TestRingBuffer_CloseUnblocksReader(t *testing.T) {
	rb := NewRingBuffer(16)

	done := make(chan error, 1)
	go func() {
		buf := make([]byte, 4)
		_, err := rb.Read(buf)
		done <- err
	}()

	rb.Close()

	if err := <-done; err != io.EOF {
		t.Fatalf("expected io.EOF from blocked reader, got %v", err)
	}
}

func TestRingBuffer_CloseStillDrainsBuffered(t *testing.T) {
	rb := NewRingBuffer(16)
	rb.Write([]byte{1, 2})
	rb.Close()

	out := make([]byte, 2)
	n, err := rb.Read(out)
	if err != nil {
		t.Fatalf("expected no error draining remaining data, got %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 bytes, got %d", n)
	}

	if _, err := rb.Read(out); err != io.EOF {
		t.Fatalf("expected io.EOF after drain, got %v", err)
	}
}

func TestRingBuffer_WriteAfterCloseIsNoop(t *testing.T) {
	rb := NewRingBuffer(16)
	rb.Close()
	rb.Write([]byte{1, 2, 3})
	if got := rb.Buffered(); got != 0 {
		t.Fatalf("expected 0 buffered after write to closed buffer, got %d", got)
	}
}

func TestRingBuffer_ConcurrentReadWrite(t *testing.T) {
	rb := NewRingBuffer(1024)

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		data := make([]byte, 100)
		for i := 0; i < 100; i++ {
			for j := range data {
				data[j] = byte(i)
			}
			rb.Write(data)
		}
		rb.Close()
	}()

	received := 0
	go func() {
		defer wg.Done()
		buf := make([]byte, 64)
		for {
			n, err := rb.Read(buf)
			received += n
			if err == io.EOF {
				return
			}
		}
	}()

	wg.Wait()

	if received == 0 {
		t.Fatal("received 0 bytes")
	}
	if received > 10000 {
		t.Fatalf("received more bytes (%d) than written (10000)", received)
	}
}
