package handler

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r gin.IRouter, planHandler *PlanHandler, formHandler *FormHandler) {
	r.GET("/", formHandler.HandleIndex)
	r.POST("/form", formHandler.HandleEditForm)
	r.POST("/plan", formHandler.HandleGeneratePlan)

	v1 := r.Group("/api/v1")
	{
		v1.POST("/plan", planHandler.HandleGeneratePlan)
		v1.POST("/plan/export", planHandler.HandleExportPlan)
		v1.GET("/days", planHandler.HandleListDays)
	}
}
