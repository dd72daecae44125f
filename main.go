package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	agent "agentbot/agent"
)

const SESSION_ID = "sample"

// sample queries exercising the function tools
var TEST_QUERIES = []string{
	"Convert 25 degrees Celsius to Fahrenheit.",
	"What's the weather for Geneva?",
	"What is the sum of 45 and 55?",
	"Retrieve user information for user ID 1.",
	"Compose a short note with the weather for Geneva and follow up about it in 60 seconds.",
}

func main() {
	query := flag.Int("query", 0, "run a specific test query")
	customQuery := flag.String("custom-query", "", "run a custom query instead of the predefined test queries")
	listQueries := flag.Bool("list-queries", false, "list all available test queries and exit")
	group := flag.Bool("group", false, "run the reviewer/writer group chat instead of the test queries")
	flag.Parse()

	log.SetFlags(log.Ltime | log.Lshortfile)

	if *listQueries {
		fmt.Println("Available test queries:")
		for i, q := range TEST_QUERIES {
			fmt.Printf("%d. %s\n", i+1, q)
		}
		return
	}

	log.Println("Initializing...")
	err := godotenv.Load()
	if err != nil {
		log.Println("Unable to load env variables")
	}

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		log.Fatalln("Unable to get Open AI API Key")
	}

	a := agent.New(apiKey)
	defer a.Close()

	if *group {
		runGroupChat(a)
		return
	}

	var queries []string
	switch {
	case *customQuery != "":
		queries = []string{*customQuery}
	case *query > 0 && *query <= len(TEST_QUERIES):
		queries = []string{TEST_QUERIES[*query-1]}
	case *query != 0:
		log.Fatalf("query must be between 1 and %d\n", len(TEST_QUERIES))
	default:
		queries = TEST_QUERIES
	}

	digestEnabled := setupDailyDigest(a)

	ctx := context.Background()
	registry := agent.NewSessionToolRegistry(a, SESSION_ID)

	assistantID := a.Config.AssistantID
	if assistantID == "" {
		assistant, err := agent.CreateAssistant(ctx, "my-assistant", registry, false, a)
		if err != nil {
			log.Fatalln("Unable to create assistant: ", err)
		}
		assistantID = assistant.ID
		defer agent.DeleteAssistant(ctx, assistantID, a)
	}

	for i, q := range queries {
		fmt.Printf("\n=== Query %d/%d: %s\n", i+1, len(queries), q)

		// fresh thread per query
		_, err := a.State.ResetThread(SESSION_ID, a.AIClient)
		if err != nil {
			log.Println("Unable to reset thread: ", err)
			continue
		}

		response, err := agent.GetResponse(ctx, agent.ResponseReq{
			SessionID:   SESSION_ID,
			AssistantID: assistantID,
			Message:     q,
			Tools:       registry,
		}, a)
		if err != nil {
			log.Println("Unable to get response: ", err)
			response = agent.ERROR_RESPONSE
		}
		fmt.Println(response)

		// short delay between queries to stay under the rate limit
		if i < len(queries)-1 {
			time.Sleep(1 * time.Second)
		}
	}

	if digestEnabled {
		log.Println("Waiting for scheduled jobs. Press CTRL+C to exit.")
		sc := make(chan os.Signal, 1)
		signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
		<-sc
	}
}

func runGroupChat(a *agent.Agent) {
	chat := agent.NewReviewerWriterChat(a.AIClient, a.Config)
	scanner := bufio.NewScanner(os.Stdin)
	ctx := context.Background()

	fmt.Println("Enter content to improve. Use '@filename' to load a file, 'reset' to restart, 'exit' to quit.")
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		input := strings.TrimSpace(scanner.Text())

		switch {
		case input == "":
			continue
		case input == "exit":
			return
		case input == "reset":
			chat.Reset()
			fmt.Println("Conversation reset.")
			continue
		case strings.HasPrefix(input, "@") && len(input) > 1:
			content, err := os.ReadFile(input[1:])
			if err != nil {
				fmt.Println("Unable to read file: ", err)
				continue
			}
			input = string(content)
		}

		chat.Submit(input)
		messages, err := chat.Invoke(ctx)
		if err != nil {
			log.Println("group chat error: ", err)
		}
		for _, message := range messages {
			fmt.Printf("%s: %s\n", message.AgentName, message.Content)
		}
	}
}

// setupDailyDigest schedules a usage digest when DIGEST_TIME (HH:MM) is set
func setupDailyDigest(a *agent.Agent) bool {
	digestTime := os.Getenv("DIGEST_TIME")
	if digestTime == "" {
		return false
	}

	at, err := time.Parse("15:04", digestTime)
	if err != nil {
		log.Println("could not parse DIGEST_TIME: ", err)
		return false
	}

	err = a.Scheduler.AddDailyQueryJob("daily-digest", at, func() {
		summary, err := a.DB.GetUsageSummary()
		if err != nil {
			log.Println("unable to get usage summary: ", err)
			return
		}

		message := fmt.Sprintf(
			"%s\nUsage so far: %d runs, %d completed, %d total tokens.",
			agent.DAILY_DIGEST_INSTRUCTIONS,
			summary.TotalRuns,
			summary.CompletedRuns,
			summary.TotalTokens,
		)

		response, err := agent.GetChatResponse(context.Background(), "daily-digest", message, a)
		if err != nil {
			log.Println("unable to get digest response: ", err)
			return
		}
		fmt.Println(response)
	})
	if err != nil {
		log.Println("unable to schedule daily digest: ", err)
		return false
	}

	log.Println("Scheduled daily digest for: ", digestTime)
	return true
}
