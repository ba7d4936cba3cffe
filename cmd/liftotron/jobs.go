package main

import (
	"context"
	"liftotron/internal"
	"liftotron/runtime"
)

// Scheduled job names, also used as metric labels.
const (
	jobSendGM          = "send_gm"
	jobResetGMUsers    = "reset_gm_users"
	jobCheckAllGMSent  = "check_all_gm_sent"
	jobSendPoem        = "send_poem"
	jobMentionEveryone = "mention_everyone"
)

// DailyBot is the set of scheduled actions of the bot.
type DailyBot interface {
	SendGreeting(ctx context.Context) error
	ResetDaily(ctx context.Context) error
	CheckAttendance(ctx context.Context) error
	SendPoem(ctx context.Context) error
	MentionEveryone(ctx context.Context) error
}

// Jobs builds the schedule table. An empty spec leaves the job disabled.
func Jobs(config internal.Config, bot DailyBot) []runtime.Job {
	return []runtime.Job{
		{Name: jobSendGM, Spec: config.GreetingSchedule, Run: bot.SendGreeting},
		{Name: jobResetGMUsers, Spec: config.ResetSchedule, Run: bot.ResetDaily},
		{Name: jobCheckAllGMSent, Spec: config.CheckSchedule, Run: bot.CheckAttendance},
		{Name: jobSendPoem, Spec: config.PoemSchedule, Run: bot.SendPoem},
		{Name: jobMentionEveryone, Spec: config.WeeklySchedule, Run: bot.MentionEveryone},
	}
}
