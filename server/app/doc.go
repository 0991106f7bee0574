// app is the deleted-message watch for a single Telegram discussion group.
//
// *. Replies posted in the monitored group are recorded (messages table).
// *. Captioned media posts in the group are recorded as items, keyed by their own message id.
// *. /deleted probes every recorded message: forward it into the group and delete the copy.
//    A probe that fails marks the message as deleted.
// *. A deleted reply is matched to its thread's item through message_thread_id == item message_id.
//    This is how Telegram links a discussion thread to the channel post that opened it,
//    but nothing in the schema enforces it.
// *. Everything recorded is wiped once a day by the purge job.
//
// Implement notes:
// The probe performs two visible mutations per still-existing message,
// so only one report may run at a time (ReportService guards it).
// Recording is best effort, store errors come back as an Outcome and are only logged.
package app
