package service

import "errors"

// 业务哨兵错误，处理层通过 errors.Is 映射为响应码
var (
	ErrNotFound           = errors.New("记录不存在")
	ErrOrderNotFound      = errors.New("订单不存在")
	ErrInvoiceNotFound    = errors.New("发票不存在")
	ErrArtworkNotFound    = errors.New("画作记录不存在")
	ErrArtworkFileMissing = errors.New("画作文件不在列表中")
	ErrTaskNotFound       = errors.New("任务不存在")
	ErrStaffNotFound      = errors.New("员工不存在")

	ErrInvalidCredentials = errors.New("账号或密码错误")
	ErrInvalidPassword    = errors.New("密码错误")

	ErrValidation             = errors.New("参数不合法")
	ErrStatusInvalid          = errors.New("状态不合法")
	ErrInvoiceUnpaid          = errors.New("发票未支付，订单不能关闭")
	ErrQuantitiesUnconfirmed  = errors.New("各班数量尚未确认")
	ErrStaffExists            = errors.New("员工账号已存在")
	ErrStaffProtected         = errors.New("默认管理员账号不可删除")
	ErrArtworkNoFiles         = errors.New("未收到任何文件")
	ErrArtworkFileTooLarge    = errors.New("文件超出大小限制")
	ErrArtworkTypeNotAllowed  = errors.New("文件类型不允许")
)
