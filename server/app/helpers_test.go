package app_test

import (
	"github.com/ericzzh/telegram-deletewatch/server/bot"
)

const testGroup = "Cheeky Softwear Club Chat"

func nopLogger() bot.Logger {
	return bot.New(nil, bot.NopLogger())
}

func int64p(v int64) *int64 {
	return &v
}
