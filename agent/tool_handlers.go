package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"
)

type ConvertTemperatureFuncArgs struct {
	Celsius float64 `json:"celsius"`
}

type WeatherFuncArgs struct {
	Location string `json:"location"`
}

type SumNumbersFuncArgs struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
}

type UserInfoFuncArgs struct {
	UserID int `json:"user_id"`
}

type GenerateImageFuncArgs struct {
	Prompt string `json:"prompt"`
}

type FollowupFuncArgs struct {
	Message      string `json:"message"`
	DelaySeconds int    `json:"delay_seconds"`
}

// canned sample data, matching the original test queries
var weatherByLocation = map[string]string{
	"geneva":   "Sunny, 22C",
	"new york": "Cloudy, 18C",
	"london":   "Rainy, 14C",
	"tokyo":    "Clear, 26C",
}

var userInfoByID = map[int]string{
	1: `{"name": "Alice Johnson", "email": "alice@example.com"}`,
	2: `{"name": "Bob Smith", "email": "bob@example.com"}`,
	3: `{"name": "Sam Brown", "email": "sam@example.com"}`,
}

// DefaultToolRegistry returns the sample tools that need no session context
func DefaultToolRegistry(a *Agent) *ToolRegistry {
	registry := NewToolRegistry()

	registry.Register(ConvertTemperatureFuncDef, handleConvertTemperature)
	registry.Register(GetWeatherFuncDef, handleGetWeather)
	registry.Register(SumNumbersFuncDef, handleSumNumbers)
	registry.Register(GetUserInfoFuncDef, handleGetUserInfo)
	registry.Register(
		GenerateImageFuncDef,
		func(ctx context.Context, args string) (string, error) {
			return handleGenerateImage(ctx, args, a.AIClient)
		},
	)

	return registry
}

// NewSessionToolRegistry returns the default tools plus the ones bound to a
// session. The session id is passed in explicitly so handlers never reach
// into surrounding scope for it.
func NewSessionToolRegistry(a *Agent, sessionID string) *ToolRegistry {
	registry := DefaultToolRegistry(a)

	registry.Register(
		ScheduleFollowupFuncDef,
		func(ctx context.Context, args string) (string, error) {
			return scheduleFollowup(ctx, args, sessionID, a)
		},
	)

	return registry
}

func handleConvertTemperature(_ context.Context, args string) (string, error) {
	funcArgs := ConvertTemperatureFuncArgs{}
	err := json.Unmarshal([]byte(args), &funcArgs)
	if err != nil {
		log.Println("Could not unmarshal func args: ", args)
		return "", err
	}

	fahrenheit := funcArgs.Celsius*9/5 + 32
	return fmt.Sprintf("%.1f degrees Fahrenheit", fahrenheit), nil
}

func handleGetWeather(_ context.Context, args string) (string, error) {
	funcArgs := WeatherFuncArgs{}
	err := json.Unmarshal([]byte(args), &funcArgs)
	if err != nil {
		log.Println("Could not unmarshal func args: ", args)
		return "", err
	}

	log.Println("getting weather for: ", funcArgs.Location)

	weather, ok := weatherByLocation[strings.ToLower(funcArgs.Location)]
	if !ok {
		return "No weather data available for that location", nil
	}
	return weather, nil
}

func handleSumNumbers(_ context.Context, args string) (string, error) {
	funcArgs := SumNumbersFuncArgs{}
	err := json.Unmarshal([]byte(args), &funcArgs)
	if err != nil {
		log.Println("Could not unmarshal func args: ", args)
		return "", err
	}

	return fmt.Sprintf("%g", funcArgs.A+funcArgs.B), nil
}

func handleGetUserInfo(_ context.Context, args string) (string, error) {
	funcArgs := UserInfoFuncArgs{}
	err := json.Unmarshal([]byte(args), &funcArgs)
	if err != nil {
		log.Println("Could not unmarshal func args: ", args)
		return "", err
	}

	info, ok := userInfoByID[funcArgs.UserID]
	if !ok {
		return "", fmt.Errorf("no user with id %d", funcArgs.UserID)
	}
	return info, nil
}

func handleGenerateImage(
	ctx context.Context,
	args string,
	client AgentClient,
) (string, error) {
	funcArgs := GenerateImageFuncArgs{}
	err := json.Unmarshal([]byte(args), &funcArgs)
	if err != nil {
		log.Println("Could not unmarshal func args: ", args)
		return "", err
	}

	imgURL, err := GetImgUrl(ctx, funcArgs.Prompt, client)
	if err != nil {
		log.Println("unable to generate image: ", err)
		return "", err
	}

	return imgURL, nil
}

func scheduleFollowup(
	ctx context.Context,
	args string,
	sessionID string,
	a *Agent,
) (string, error) {
	var funcArgs FollowupFuncArgs

	err := json.Unmarshal([]byte(args), &funcArgs)
	if err != nil {
		log.Println("Could not unmarshal func args: ", args)
		return "", err
	}

	delay := time.Duration(funcArgs.DelaySeconds) * time.Second

	log.Printf(
		"scheduling follow up for session %s in %s\n",
		sessionID,
		delay,
	)

	err = a.Scheduler.AddDelayedQueryJob(
		sessionID,
		delay,
		func() {
			response, err := GetResponse(
				context.Background(),
				ResponseReq{
					SessionID:              sessionID,
					Message:                funcArgs.Message,
					AdditionalInstructions: SCHEDULED_QUERY_INSTRUCTIONS,
				},
				a,
			)
			if err != nil {
				log.Println("unable to get follow up response: ", err)
				return
			}
			fmt.Println(response)
		},
	)
	if err != nil {
		return "", err
	}

	return "follow up scheduled", nil
}
