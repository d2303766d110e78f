package enum

type ChatType string

const (
	GroupChat       ChatType = "group_chat"
	TeamChat        ChatType = "team_chat"
	CustomerToAgent ChatType = "customer_to_agent"
)

type ChatStatus string

const (
	ChatStatusPending     ChatStatus = "pending"
	ChatStatusSuccessful  ChatStatus = "successful"
	ChatStatusDeclined    ChatStatus = "declined"
	ChatStatusUnsucessful ChatStatus = "unsucessful"
)
