package transaction_test

import (
	"testing"
	"time"

	"github.com/Gaurav-Gosain/waveland/internal/transaction"
)

func TestZeroTransactionIsAlwaysComplete(t *testing.T) {
	var txn transaction.Transaction
	if !txn.IsZero() {
		t.Error("zero value should report IsZero")
	}
	if !txn.IsCompleted(0) {
		t.Error("zero transaction should be complete")
	}
}

func TestTransactionCompletesOnAllAcks(t *testing.T) {
	txn := transaction.New()
	txn.AddParticipant(0)
	txn.AddParticipant(0)

	if txn.IsCompleted(0) {
		t.Fatal("transaction complete with outstanding acks")
	}

	txn.NotifyAck()
	if txn.IsCompleted(0) {
		t.Fatal("transaction complete with one outstanding ack")
	}

	txn.NotifyAck()
	if !txn.IsCompleted(0) {
		t.Fatal("transaction should complete after all acks")
	}
}

func TestTransactionSharesStateAcrossCopies(t *testing.T) {
	txn := transaction.New()
	clone := txn
	txn.AddParticipant(0)
	clone.NotifyAck()
	if !txn.IsCompleted(0) {
		t.Error("copies should share the participant count")
	}
}

func TestTransactionTimesOut(t *testing.T) {
	txn := transaction.New()
	txn.AddParticipant(time.Second)

	if txn.IsCompleted(time.Second) {
		t.Fatal("transaction complete before the deadline")
	}
	if txn.IsCompleted(time.Second + transaction.Timeout - time.Millisecond) {
		t.Fatal("transaction complete just before the deadline")
	}
	// Stragglers stop blocking once the deadline passes.
	if !txn.IsCompleted(time.Second + transaction.Timeout) {
		t.Fatal("transaction should be forced through at the deadline")
	}
	if txn.Pending() != 1 {
		t.Errorf("pending = %d, want the straggler still counted", txn.Pending())
	}
}
