package lfq

import "testing"

func TestSPSCRoundsCapacityToPowerOfTwo(t *testing.T) {
	q := NewSPSC[float32](100)
	if q.Cap() != 128 {
		t.Fatalf("got cap %d, want 128", q.Cap())
	}
}

func TestSPSCEnqueueDequeueFIFO(t *testing.T) {
	q := NewSPSC[float32](4)

	for i := float32(0); i < 4; i++ {
		v := i
		if err := q.Enqueue(&v); err != nil {
			t.Fatalf("enqueue %v failed: %v", v, err)
		}
	}

	for i := float32(0); i < 4; i++ {
		got, err := q.Dequeue()
		if err != nil {
			t.Fatalf("dequeue failed: %v", err)
		}
		if got != i {
			t.Errorf("got %v, want %v", got, i)
		}
	}
}

func TestSPSCEnqueueOnFullReturnsWouldBlock(t *testing.T) {
	q := NewSPSC[float32](2)
	a, b, c := float32(1), float32(2), float32(3)

	if err := q.Enqueue(&a); err != nil {
		t.Fatalf("enqueue failed: %v", err)
	}
	if err := q.Enqueue(&b); err != nil {
		t.Fatalf("enqueue failed: %v", err)
	}
	if err := q.Enqueue(&c); !IsWouldBlock(err) {
		t.Fatalf("expected ErrWouldBlock on full queue, got %v", err)
	}
}

func TestSPSCDequeueOnEmptyReturnsWouldBlock(t *testing.T) {
	q := NewSPSC[float32](2)
	if _, err := q.Dequeue(); !IsWouldBlock(err) {
		t.Fatalf("expected ErrWouldBlock on empty queue, got %v", err)
	}
}

func TestSPSCPanicsOnSmallCapacity(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic for capacity < 2")
		}
	}()
	NewSPSC[float32](1)
}
