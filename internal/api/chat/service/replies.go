package chatService

// Fixed user-facing strings. These are appended to the conversation verbatim,
// so changes here are visible product copy, not internal messages.
const (
	replyNotUnderstood = `Mình chưa hiểu yêu cầu của bạn. Bạn có thể thử: "ăn sáng 30k", "tăng ngân sách lên 10 triệu" hoặc "xóa chi tiêu #12".`

	replyNeedsNetwork = "Tính năng này cần kết nối mạng. Vui lòng kiểm tra kết nối và thử lại."

	replyRemoteError = "Có lỗi khi kết nối trợ lý AI. Vui lòng thử lại sau."

	replyEmptyRemote = "Trợ lý AI không trả lời được yêu cầu này. Vui lòng thử lại sau."

	replyEditUnsupported = `Chỉnh sửa trực tiếp chưa được hỗ trợ. Bạn hãy xóa khoản cũ (ví dụ: "xóa chi tiêu #12") rồi nhập lại khoản mới.`

	replyGenericFailure = "Đã xảy ra lỗi, vui lòng thử lại."
)
