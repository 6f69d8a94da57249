package common

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/bwmarrin/snowflake"
)

const (
	NA       = "N/A"
	ENABLED  = "enabled"
	DISABLED = "disabled"
)

var snowflakeNode *snowflake.Node

func init() {
	rand.Seed(time.Now().UnixNano())
	var err error
	snowflakeNode, err = snowflake.NewNode(rand.Int63n(1023))
	if err != nil {
		fmt.Fprintln(os.Stderr, "snowflake node init failed:", err)
		os.Exit(1)
	}
}

// UUID returns a globally unique opaque string id for new entities.
func UUID() string {
	return snowflakeNode.Generate().String()
}

// UUIDint64 returns a globally unique int64 id.
func UUIDint64() int64 {
	return snowflakeNode.Generate().Int64()
}

func IfEmptyStr(src string, def string) string {
	if src == "" {
		return def
	}
	return src
}
