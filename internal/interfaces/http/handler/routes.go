package handler

import (
	"github.com/exos/backend/internal/interfaces/http/router"
)

// PrintRoutes creates the route group for document printing
func PrintRoutes(handler *PrintHandler) *router.DomainGroup {
	group := router.NewDomainGroup("print", "/print")

	group.POST("/check-requests/preview", handler.PreviewCheckRequest)
	group.POST("/check-requests/pdf", handler.GenerateCheckRequestPDF)
	group.POST("/memoranda/preview", handler.PreviewMemorandum)
	group.POST("/memoranda/pdf", handler.GenerateMemorandumPDF)

	// Reference data
	group.GET("/document-types", handler.GetDocumentTypes)
	group.GET("/paper-sizes", handler.GetPaperSizes)
	group.GET("/templates", handler.GetTemplates)

	// Stored PDFs
	group.GET("/files/*path", handler.ServePDF)

	return group
}

// AmountWordsRoutes creates the route groups for the amount-to-words converter
func AmountWordsRoutes(handler *AmountWordsHandler) []*router.DomainGroup {
	words := router.NewDomainGroup("amount-words", "/amount-words")
	words.GET("", handler.ConvertQuery)
	words.POST("", handler.Convert)

	currencies := router.NewDomainGroup("currencies", "/currencies")
	currencies.GET("", handler.ListCurrencies)

	return []*router.DomainGroup{words, currencies}
}

// SystemRoutes creates the route group for system endpoints
func SystemRoutes(handler *SystemHandler) *router.DomainGroup {
	group := router.NewDomainGroup("system", "/system")
	group.GET("/info", handler.GetSystemInfo)
	group.GET("/ping", handler.Ping)
	return group
}
