package usecase

import (
	"support-desk-api/dto/res"
	"support-desk-api/entity"
)

func toUserResponse(user *entity.User) res.UserResponse {
	response := res.UserResponse{
		ID:          user.ID,
		Username:    user.Username,
		Firstname:   user.Firstname,
		Lastname:    user.Lastname,
		Email:       user.Email,
		PhoneNumber: user.PhoneNumber,
		Role:        string(user.Role),
		IsVerified:  user.IsVerified,
	}
	if user.Agent != nil {
		agentID := user.Agent.ID
		response.AgentID = &agentID
	}
	return response
}

func toParticipants(participants []entity.ChatParticipant) []res.ParticipantResponse {
	responses := make([]res.ParticipantResponse, 0, len(participants))
	for _, participant := range participants {
		responses = append(responses, res.ParticipantResponse{
			User: res.ParticipantUser{
				ID:        participant.User.ID,
				Username:  participant.User.Username,
				Firstname: participant.User.Firstname,
				Lastname:  participant.User.Lastname,
				Role:      string(participant.User.Role),
			},
		})
	}
	return responses
}

func toMessageResponse(message entity.Message) res.MessageResponse {
	return res.MessageResponse{
		ID:        message.ID,
		ChatID:    message.ChatID,
		SenderID:  message.SenderID,
		Content:   message.Content,
		IsRead:    message.IsRead,
		CreatedAt: message.CreatedAt,
	}
}

func toTransactionResponse(transaction *entity.Transaction) res.TransactionResponse {
	return res.TransactionResponse{
		ID:              transaction.ID,
		TransactionType: string(transaction.TransactionType),
		ChatID:          transaction.ChatID,
		AgentID:         transaction.AgentID,
		CustomerID:      transaction.CustomerID,
		DepartmentID:    transaction.DepartmentID,
		CategoryID:      transaction.CategoryID,
		SubCategoryID:   transaction.SubCategoryID,
		CountryID:       transaction.CountryID,
		CardType:        transaction.CardType,
		CardNumber:      transaction.CardNumber,
		Amount:          transaction.Amount,
		ExchangeRate:    transaction.ExchangeRate,
		AmountNaira:     transaction.AmountNaira,
		CryptoAmount:    transaction.CryptoAmount,
		FromAddress:     transaction.FromAddress,
		ToAddress:       transaction.ToAddress,
		Status:          string(transaction.Status),
		CreatedAt:       transaction.CreatedAt,
	}
}

// optional turns an empty string into a NULL column.
func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
