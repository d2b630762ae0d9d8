package core

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"suinocore/pkg/domain"
)

func TestExpvarMetricsRecorderCountsOutcomes(t *testing.T) {
	rec := NewExpvarMetricsRecorder("")
	svc := newTestService(t, WithMetricsRecorder(rec))
	ctx := context.Background()

	mustRegisterSow(t, svc, "MA-001")
	if _, _, err := svc.RegisterAnimal(ctx, Animal{Identification: "MA-001", Sex: domain.SexFemale}); err == nil {
		t.Fatal("duplicate must fail")
	}

	snap := rec.Snapshot()
	stats, ok := snap.Operations["register_animal"]
	if !ok {
		t.Fatalf("register_animal not recorded: %v", snap.Operations)
	}
	if stats.Success != 1 || stats.Error != 1 {
		t.Fatalf("success/error = %d/%d, want 1/1", stats.Success, stats.Error)
	}
	if !strings.HasPrefix(rec.Name(), "suinocore_service_metrics_") {
		t.Fatalf("generated name = %q", rec.Name())
	}
}

func TestJSONTracerEmitsSpans(t *testing.T) {
	var buf bytes.Buffer
	tracer := NewJSONTracer(&buf)
	svc := newTestService(t, WithTracer(tracer))

	mustRegisterSow(t, svc, "MA-001")
	if _, _, err := svc.RegisterAnimal(context.Background(), Animal{Identification: "MA-001", Sex: domain.SexFemale}); err == nil {
		t.Fatal("duplicate must fail")
	}

	entries := tracer.Entries()
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].Operation != "register_animal" || entries[0].Status != "success" {
		t.Fatalf("first span = %+v", entries[0])
	}
	if entries[1].Status != "error" || entries[1].Error == "" {
		t.Fatalf("second span = %+v", entries[1])
	}

	dec := json.NewDecoder(&buf)
	lines := 0
	for dec.More() {
		var entry JSONTraceEntry
		if err := dec.Decode(&entry); err != nil {
			t.Fatalf("decode line %d: %v", lines, err)
		}
		lines++
	}
	if lines != 2 {
		t.Fatalf("serialized lines = %d, want 2", lines)
	}
}

func TestPrometheusMetricsRecorder(t *testing.T) {
	registry := prometheus.NewRegistry()
	rec, err := NewPrometheusMetricsRecorder(registry)
	if err != nil {
		t.Fatalf("new recorder: %v", err)
	}
	svc := newTestService(t, WithMetricsRecorder(rec))

	mustRegisterSow(t, svc, "MA-001")

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	names := map[string]bool{}
	for _, mf := range families {
		names[mf.GetName()] = true
	}
	if !names["suinocore_service_operations_total"] {
		t.Fatalf("counter not registered: %v", names)
	}
	if !names["suinocore_service_operation_duration_seconds"] {
		t.Fatalf("histogram not registered: %v", names)
	}

	if _, err := NewPrometheusMetricsRecorder(registry); err == nil {
		t.Fatal("double registration must fail")
	}
}
