package server

import (
	"context"
	"strconv"

	"github.com/go-kratos/kratos/v2/errors"
	kratoshttp "github.com/go-kratos/kratos/v2/transport/http"

	"github.com/go-tangra/go-tangra-readiness/internal/report"
)

// Operation names scope the selector middleware: the submit operation
// is agent-facing, everything else is API-facing.
const (
	OperationSubmitReport        = "/readiness.collector.v1.CollectorService/SubmitReport"
	OperationGetReport           = "/readiness.collector.v1.CollectorService/GetReport"
	OperationListReports         = "/readiness.collector.v1.CollectorService/ListReports"
	OperationDeleteReport        = "/readiness.collector.v1.CollectorService/DeleteReport"
	OperationGetLatestByHostname = "/readiness.collector.v1.CollectorService/GetLatestByHostname"
)

// RegisterRoutes binds the collector service routes to the HTTP server.
func RegisterRoutes(srv *kratoshttp.Server, h *Handler) {
	r := srv.Route("/")
	r.POST("/v1/reports", handleSubmitReport(h))
	r.GET("/v1/reports", handleListReports(h))
	r.GET("/v1/reports/{id}", handleGetReport(h))
	r.DELETE("/v1/reports/{id}", handleDeleteReport(h))
	r.GET("/v1/hosts/{hostname}/latest", handleGetLatest(h))
}

func handleSubmitReport(h *Handler) func(kratoshttp.Context) error {
	return func(ctx kratoshttp.Context) error {
		var rep report.Report
		if err := ctx.Bind(&rep); err != nil {
			return err
		}
		kratoshttp.SetOperation(ctx, OperationSubmitReport)
		next := ctx.Middleware(func(ctx context.Context, req any) (any, error) {
			return h.submitReport(ctx, req.(*report.Report))
		})
		out, err := next(ctx, &rep)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}

func handleListReports(h *Handler) func(kratoshttp.Context) error {
	return func(ctx kratoshttp.Context) error {
		var req ListRequest
		if err := ctx.BindQuery(&req); err != nil {
			return err
		}
		kratoshttp.SetOperation(ctx, OperationListReports)
		next := ctx.Middleware(func(ctx context.Context, req any) (any, error) {
			return h.listReports(ctx, req.(*ListRequest))
		})
		out, err := next(ctx, &req)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}

func handleGetReport(h *Handler) func(kratoshttp.Context) error {
	return func(ctx kratoshttp.Context) error {
		id, err := pathID(ctx)
		if err != nil {
			return err
		}
		kratoshttp.SetOperation(ctx, OperationGetReport)
		next := ctx.Middleware(func(ctx context.Context, req any) (any, error) {
			return h.getReport(ctx, req.(int64))
		})
		out, err := next(ctx, id)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}

func handleDeleteReport(h *Handler) func(kratoshttp.Context) error {
	return func(ctx kratoshttp.Context) error {
		id, err := pathID(ctx)
		if err != nil {
			return err
		}
		kratoshttp.SetOperation(ctx, OperationDeleteReport)
		next := ctx.Middleware(func(ctx context.Context, req any) (any, error) {
			return nil, h.deleteReport(ctx, req.(int64))
		})
		if _, err := next(ctx, id); err != nil {
			return err
		}
		return ctx.Result(200, map[string]any{})
	}
}

func handleGetLatest(h *Handler) func(kratoshttp.Context) error {
	return func(ctx kratoshttp.Context) error {
		hostname := ctx.Vars().Get("hostname")
		kratoshttp.SetOperation(ctx, OperationGetLatestByHostname)
		next := ctx.Middleware(func(ctx context.Context, req any) (any, error) {
			return h.getLatestByHostname(ctx, req.(string))
		})
		out, err := next(ctx, hostname)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}

func pathID(ctx kratoshttp.Context) (int64, error) {
	id, err := strconv.ParseInt(ctx.Vars().Get("id"), 10, 64)
	if err != nil {
		return 0, errors.BadRequest("INVALID_ID", "id must be an integer")
	}
	return id, nil
}
