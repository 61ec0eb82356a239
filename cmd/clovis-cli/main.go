package main

import (
	"context"

	"clovis-backend/cmd/clovis-cli/commands"
	"clovis-backend/lib/telemetry"
)

func main() {
	telemetry.SetupFromEnv(context.Background(), "clovis-cli")
	telemetry.InitSlog(true)
	commands.ExecuteContext(context.Background())
}
