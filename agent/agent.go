package agent

import (
	"log"
	"os"

	openai "github.com/sashabaranov/go-openai"
)

// Agent bundles the AI client with the state, storage, and scheduling that
// the sample surfaces share. One Agent serves any number of sessions.
type Agent struct {
	AIClient  AgentClient
	Config    *Config
	State     *State
	DB        Database
	Scheduler *Scheduler
	Tools     *ToolRegistry
	Driver    *RunDriver
}

func New(apiKey string) *Agent {
	clientConfig := openai.DefaultConfig(apiKey)
	clientConfig.AssistantVersion = "v2"
	aiClient := openai.NewClientWithConfig(clientConfig)

	config := &Config{
		DefaultModel:       openai.GPT4o,
		AssistantID:        os.Getenv("ASSISTANT_ID"),
		BaseInstructions:   AGENT_INSTRUCTIONS,
		PollInterval:       RUN_POLL_INTERVAL,
		MaxRetries:         DEFAULT_MAX_RETRIES,
		InitialRetryDelay:  DEFAULT_INITIAL_RETRY_DELAY,
		MaxChatIterations:  10,
		HistoryTargetCount: 5,
	}

	log.Println("Connecting to db")
	db, err := NewDB("agentbot.db")
	if err != nil {
		log.Fatalln("Unable to get database connection", err)
	}

	scheduler, err := NewScheduler()
	if err != nil {
		log.Fatal("could not create scheduler", err)
	}
	scheduler.Start()

	a := &Agent{
		AIClient:  aiClient,
		Config:    config,
		State:     NewState(),
		DB:        db,
		Scheduler: scheduler,
		Driver:    NewRunDriver(aiClient, config),
	}
	a.Tools = DefaultToolRegistry(a)
	return a
}

func (a *Agent) Close() {
	if err := a.Scheduler.Shutdown(); err != nil {
		log.Println("unable to shut down scheduler: ", err)
	}
	if err := a.DB.Close(); err != nil {
		log.Println("unable to close db connection: ", err)
	}
}
