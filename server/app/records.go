package app

import "time"

// MessageRecord is one reply recorded from the monitored group.
type MessageRecord struct {
	ID        string    `db:"id"`
	MessageID int64     `db:"message_id"`
	Username  string    `db:"username"`
	Text      string    `db:"text"`
	Timestamp time.Time `db:"timestamp"`
	// ThreadID is the message_thread_id Telegram put on the reply. It is
	// expected to equal the MessageID of the item that opened the thread.
	ThreadID *int64 `db:"message_thread_id"`
}

// ItemRecord is the caption of a media post that anchors a thread.
type ItemRecord struct {
	MessageID int64  `db:"message_id"`
	Caption   string `db:"caption"`
}

// SubscriberRecord is where reports for a username are delivered.
type SubscriberRecord struct {
	Username string `db:"username"`
	ChatID   int64  `db:"chat_id"`
}

// ReplyEvent is an inbound text message seen in some group.
type ReplyEvent struct {
	GroupTitle string
	MessageID  int64
	Username   string
	Text       string
	Timestamp  time.Time
	ThreadID   *int64
	IsReply    bool
}

// MediaEvent is an inbound media post seen in some group.
type MediaEvent struct {
	GroupTitle string
	MessageID  int64
	Caption    string
}

// PurgeStats counts rows removed by a purge.
type PurgeStats struct {
	Messages int64
	Items    int64
}
