package agent

import (
	"context"
	"strings"
	"testing"
)

func TestHandleConvertTemperature(t *testing.T) {
	output, err := handleConvertTemperature(context.Background(), `{"celsius": 100}`)
	if err != nil {
		t.Fatal(err)
	}
	if output != "212.0 degrees Fahrenheit" {
		t.Errorf("unexpected output: %q", output)
	}
}

func TestHandleGetWeather(t *testing.T) {
	output, err := handleGetWeather(context.Background(), `{"location": "Geneva"}`)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(output, "Sunny") {
		t.Errorf("unexpected output: %q", output)
	}
}

func TestHandleGetWeatherUnknownLocation(t *testing.T) {
	output, err := handleGetWeather(context.Background(), `{"location": "Atlantis"}`)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(output, "No weather data") {
		t.Errorf("expected a no-data message, got %q", output)
	}
}

func TestHandleGetUserInfo(t *testing.T) {
	output, err := handleGetUserInfo(context.Background(), `{"user_id": 1}`)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(output, "Alice Johnson") {
		t.Errorf("unexpected output: %q", output)
	}
}

func TestHandleGetUserInfoUnknownUser(t *testing.T) {
	_, err := handleGetUserInfo(context.Background(), `{"user_id": 99}`)
	if err == nil {
		t.Error("expected an error for an unknown user")
	}
}

func TestHandleGenerateImage(t *testing.T) {
	client := &mockAgentClient{}
	output, err := handleGenerateImage(
		context.Background(),
		`{"prompt": "a lighthouse"}`,
		client,
	)
	if err != nil {
		t.Fatal(err)
	}
	if output != "https://example.com/img.png" {
		t.Errorf("unexpected output: %q", output)
	}
}

func TestScheduleFollowupRegistersJob(t *testing.T) {
	a := newTestAgent(t, &mockAgentClient{})

	output, err := scheduleFollowup(
		context.Background(),
		`{"message": "how is the weather now?", "delay_seconds": 3600}`,
		"session_1",
		a,
	)
	if err != nil {
		t.Fatal(err)
	}
	if output != "follow up scheduled" {
		t.Errorf("unexpected output: %q", output)
	}
	if !a.Scheduler.HasQueryJob("session_1") {
		t.Error("expected a scheduled job for the session")
	}

	a.Scheduler.CancelQueryJobs("session_1")
	if a.Scheduler.HasQueryJob("session_1") {
		t.Error("expected job to be cancelled")
	}
}

func TestSessionToolRegistryIncludesFollowup(t *testing.T) {
	a := newTestAgent(t, &mockAgentClient{})

	registry := NewSessionToolRegistry(a, "session_1")
	if _, ok := registry.Lookup(ScheduleFollowup); !ok {
		t.Error("expected schedule_followup to be registered")
	}
	if registry.Len() != a.Tools.Len()+1 {
		t.Errorf(
			"expected default tools plus one, got %d vs %d",
			registry.Len(),
			a.Tools.Len(),
		)
	}
}
