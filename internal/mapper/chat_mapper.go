package mapper

import (
	"lexi-chat-be/internal/dto"
	"lexi-chat-be/internal/entity"
)

func ToAttachmentEntities(in []dto.AttachmentDTO) []*entity.Attachment {
	if len(in) == 0 {
		return nil
	}
	out := make([]*entity.Attachment, 0, len(in))
	for _, a := range in {
		out = append(out, &entity.Attachment{
			Id:   a.Id,
			Type: a.Type,
			Name: a.Name,
			Size: a.Size,
			Url:  a.Url,
		})
	}
	return out
}

func ToAttachmentDTOs(in []*entity.Attachment) []dto.AttachmentDTO {
	if len(in) == 0 {
		return nil
	}
	out := make([]dto.AttachmentDTO, 0, len(in))
	for _, a := range in {
		out = append(out, dto.AttachmentDTO{
			Id:   a.Id,
			Type: a.Type,
			Name: a.Name,
			Size: a.Size,
			Url:  a.Url,
		})
	}
	return out
}

func ToChatMessageDTO(m *entity.ChatMessage) dto.ChatMessageDTO {
	out := dto.ChatMessageDTO{
		Id:          m.Id,
		Role:        m.Role,
		Text:        m.Text,
		Tone:        m.Tone,
		Attachments: ToAttachmentDTOs(m.Attachments),
		InReplyTo:   m.InReplyTo,
		CreatedAt:   m.CreatedAt,
	}
	if m.ReplyMeta != nil {
		out.ReplyingTo = m.ReplyMeta.OriginalText
	}
	return out
}

func ToChatMessageDTOs(in []*entity.ChatMessage) []dto.ChatMessageDTO {
	out := make([]dto.ChatMessageDTO, 0, len(in))
	for _, m := range in {
		out = append(out, ToChatMessageDTO(m))
	}
	return out
}

func ToHistoryResponse(s *entity.ChatSession) *dto.GetChatHistoryResponse {
	return &dto.GetChatHistoryResponse{
		Id:        s.Id,
		Title:     s.Title,
		Temporary: s.Temporary,
		CreatedAt: s.CreatedAt,
		Messages:  ToChatMessageDTOs(s.Messages),
	}
}

func ToSessionSummaries(sessions []*entity.ChatSession) []*dto.GetAllSessionsResponse {
	out := make([]*dto.GetAllSessionsResponse, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, &dto.GetAllSessionsResponse{
			Id:           s.Id,
			Title:        s.Title,
			CreatedAt:    s.CreatedAt,
			MessageCount: len(s.Messages),
		})
	}
	return out
}
