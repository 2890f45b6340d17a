package constants

// 订单状态常量
const (
	OrderStatusRequested     = "Requested"
	OrderStatusKitPrepared   = "Kit Prepared"
	OrderStatusKitDispatched = "Kit Dispatched"
	OrderStatusKitReceived   = "Kit Received"
	OrderStatusKitReturned   = "Kit Returned"
	OrderStatusInProduction  = "In Production"
	OrderStatusClosed        = "Closed"
)

// 套件时间列哨兵值（列内保存哨兵短语或 ISO 时间戳）
const (
	KitNotDispatchedYet = "Kit not dispatched yet"
	KitNotReceivedYet   = "Kit not received yet"
	KitReceivedMarker   = "Kit Received"
	KitReturnedMarker   = "Kit Returned"
)

// 画作状态常量
const (
	ArtworkStatusNotReceived = "Portraits Not Received From School Yet"
	ArtworkStatusInArtwork   = "In Artwork"
)

// 发票状态常量
const (
	InvoiceStatusUngenerated = "Ungenerated"
	InvoiceStatusGenerated   = "Generated"
	InvoiceStatusSent        = "Invoice Sent"
	InvoiceStatusPaid        = "Invoice Paid"
)

// 任务类型常量
const (
	TaskTypeKitFollowUpCall       = "kit_follow_up_call"
	TaskTypeKitCompletionFollowUp = "kit_completion_follow_up"
)

// 数量确认列哨兵值
const (
	QuantitiesUnconfirmed = "Unconfirmed"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "pn"
)
