package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iyouport-org/sspanel/pkg/model"
	"github.com/iyouport-org/sspanel/pkg/store"
	"github.com/iyouport-org/sspanel/pkg/webapi"
	log "github.com/sirupsen/logrus"
)

const statsCacheKey = "stats"

func statusOf(err error) int {
	switch {
	case errors.Is(err, model.ErrPortOutOfRange),
		errors.Is(err, model.ErrPasswordTooShort),
		errors.Is(err, model.ErrPasswordTooLong),
		errors.Is(err, model.ErrNegativeValue),
		errors.Is(err, model.ErrInvalidNode):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrAlreadyCheckedIn),
		errors.Is(err, store.ErrAccountExists),
		errors.Is(err, store.ErrPortTaken),
		errors.Is(err, store.ErrNodeExists):
		return http.StatusConflict
	case errors.Is(err, store.ErrPortExhausted):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func abort(c *gin.Context, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		log.WithField("path", c.Request.URL.Path).Error(err)
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, &webapi.ErrorResponse{Error: err.Error()})
}

func badRequest(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusBadRequest, &webapi.ErrorResponse{Error: err.Error()})
}

func (server *Server) account(c *gin.Context) (*model.Account, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, err)
		return nil, false
	}
	acc, err := server.repo.GetAccount(c.Request.Context(), uint(id))
	if err != nil {
		abort(c, err)
		return nil, false
	}
	return acc, true
}

func (server *Server) node(c *gin.Context) (*model.Node, bool) {
	nodeID, err := strconv.Atoi(c.Param("node_id"))
	if err != nil {
		badRequest(c, err)
		return nil, false
	}
	node, err := server.repo.GetNode(c.Request.Context(), nodeID)
	if err != nil {
		abort(c, err)
		return nil, false
	}
	return node, true
}

func (server *Server) PostAccount(c *gin.Context) {
	request := &webapi.PostAccountRequest{}
	if err := c.ShouldBindJSON(request); err != nil {
		badRequest(c, err)
		return
	}
	acc := server.repo.Settings().NewAccount(request.UserID)
	request.Apply(acc)
	if err := server.repo.CreateAccount(c.Request.Context(), acc); err != nil {
		abort(c, err)
		return
	}
	server.invalidateStats()
	c.JSON(http.StatusCreated, webapi.GetAccount(acc, false))
}

func (server *Server) GetAccount(c *gin.Context) {
	acc, ok := server.account(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, webapi.GetAccount(acc, server.repo.Settings().CheckedInToday(acc, server.now())))
}

func (server *Server) PostCheckIn(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, err)
		return
	}
	acc, err := server.repo.CheckIn(c.Request.Context(), uint(id), server.now())
	if err != nil {
		abort(c, err)
		return
	}
	server.invalidateStats()
	c.JSON(http.StatusOK, webapi.GetAccount(acc, true))
}

func (server *Server) GetSubscription(c *gin.Context) {
	acc, ok := server.account(c)
	if !ok {
		return
	}
	sub, err := server.repo.Subscription(c.Request.Context(), acc)
	if err != nil {
		abort(c, err)
		return
	}
	c.String(http.StatusOK, sub)
}

func (server *Server) GetNodes(c *gin.Context) {
	var (
		nodes []model.Node
		err   error
	)
	if levelStr, ok := c.GetQuery("level"); ok {
		level, perr := strconv.ParseUint(levelStr, 10, 32)
		if perr != nil {
			badRequest(c, perr)
			return
		}
		nodes, err = server.repo.VisibleNodes(c.Request.Context(), uint(level))
	} else {
		nodes, err = server.repo.ListNodes(c.Request.Context())
	}
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, webapi.GetNodes(nodes))
}

func (server *Server) PostNode(c *gin.Context) {
	request := &webapi.PostNodeRequest{}
	if err := c.ShouldBindJSON(request); err != nil {
		badRequest(c, err)
		return
	}
	node := server.repo.Settings().NewNode(request.NodeID)
	request.Apply(node)
	if err := server.repo.CreateNode(c.Request.Context(), node); err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, webapi.GetNode(node))
}

func (server *Server) GetNode(c *gin.Context) {
	node, ok := server.node(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	now := server.now()
	detail := webapi.NodeDetail{Node: webapi.GetNode(node)}
	online, err := server.repo.LatestNodeOnline(ctx, node.NodeID)
	switch {
	case err == nil:
		detail.Online = online.IsOnline(now)
		detail.OnlineUsers = online.EffectiveOnlineUsers(now)
	case !errors.Is(err, store.ErrNotFound):
		abort(c, err)
		return
	}
	info, err := server.repo.LatestNodeInfo(ctx, node.NodeID)
	switch {
	case err == nil:
		detail.Uptime = info.Uptime
		detail.Load = info.Load
	case !errors.Is(err, store.ErrNotFound):
		abort(c, err)
		return
	}
	if detail.TrafficGB, err = server.repo.NodeTrafficGB(ctx, node.NodeID); err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (server *Server) GetNodeTraffic(c *gin.Context) {
	nodeID, err := strconv.Atoi(c.Param("node_id"))
	if err != nil {
		badRequest(c, err)
		return
	}
	ctx := c.Request.Context()
	response := webapi.NodeTraffic{NodeID: nodeID}
	userStr, hasUser := c.GetQuery("user_id")
	dateStr, hasDate := c.GetQuery("date")
	switch {
	case !hasUser && hasDate:
		badRequest(c, errors.New("date requires user_id"))
		return
	case !hasUser:
		response.TotalGB, err = server.repo.NodeTrafficGB(ctx, nodeID)
	default:
		userID, perr := strconv.ParseUint(userStr, 10, 64)
		if perr != nil {
			badRequest(c, perr)
			return
		}
		response.UserID = uint(userID)
		if !hasDate {
			response.TotalGB, err = server.repo.UserNodeTrafficGB(ctx, nodeID, uint(userID))
			break
		}
		day, perr := time.ParseInLocation("2006-01-02", dateStr, server.now().Location())
		if perr != nil {
			badRequest(c, perr)
			return
		}
		response.Date = dateStr
		response.TotalGB, err = server.repo.UserNodeTrafficOnDayGB(ctx, nodeID, uint(userID), day)
	}
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// PostNodeTraffic accepts a node's traffic report as one unit. Entries for
// unknown accounts are skipped so that one deleted account does not reject
// the batch; any other failure rejects all of it.
func (server *Server) PostNodeTraffic(c *gin.Context) {
	node, ok := server.node(c)
	if !ok {
		return
	}
	request := &webapi.PostTrafficRequest{}
	if err := c.ShouldBindJSON(request); err != nil {
		badRequest(c, err)
		return
	}
	reports := make([]store.TrafficReport, len(request.Data))
	for k, v := range request.Data {
		reports[k] = store.TrafficReport{
			AccountID: v.UserID,
			Upload:    v.Upload,
			Download:  v.Download,
		}
	}
	skipped, err := server.repo.ReportTrafficBatch(c.Request.Context(), node.NodeID, reports, server.now())
	if err != nil {
		abort(c, err)
		return
	}
	for _, id := range skipped {
		log.WithFields(log.Fields{
			"node_id": node.NodeID,
			"user_id": id,
		}).Warn("traffic for unknown account")
	}
	server.invalidateStats()
	c.JSON(http.StatusOK, gin.H{"accepted": len(reports) - len(skipped)})
}

func (server *Server) PostNodeInfo(c *gin.Context) {
	node, ok := server.node(c)
	if !ok {
		return
	}
	request := &webapi.PostNodeInfoRequest{}
	if err := c.ShouldBindJSON(request); err != nil {
		badRequest(c, err)
		return
	}
	entry := &model.NodeInfoLog{
		NodeID:  node.NodeID,
		Uptime:  request.Uptime,
		Load:    request.Load,
		LogTime: server.now().Unix(),
	}
	if err := server.repo.AppendNodeInfo(c.Request.Context(), entry); err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (server *Server) PostNodeOnline(c *gin.Context) {
	node, ok := server.node(c)
	if !ok {
		return
	}
	request := &webapi.PostNodeOnlineRequest{}
	if err := c.ShouldBindJSON(request); err != nil {
		badRequest(c, err)
		return
	}
	entry := &model.NodeOnlineLog{
		NodeID:     node.NodeID,
		OnlineUser: request.OnlineUser,
		LogTime:    server.now().Unix(),
	}
	if err := server.repo.AppendNodeOnline(c.Request.Context(), entry); err != nil {
		abort(c, err)
		return
	}
	server.invalidateStats()
	c.JSON(http.StatusCreated, entry)
}

func (server *Server) GetStats(c *gin.Context) {
	if server.cache != nil {
		if cached, ok := server.cache.Get(statsCacheKey); ok {
			c.JSON(http.StatusOK, cached)
			return
		}
	}
	stats, err := server.repo.Stats(c.Request.Context(), server.now())
	if err != nil {
		abort(c, err)
		return
	}
	response := webapi.GetStats(stats)
	if server.cache != nil {
		server.cache.SetDefault(statsCacheKey, response)
	}
	c.JSON(http.StatusOK, response)
}

func (server *Server) invalidateStats() {
	if server.cache != nil {
		server.cache.Delete(statsCacheKey)
	}
}

func (server *Server) GetLogs(c *gin.Context) {
	limit := 100
	if limitStr, ok := c.GetQuery("limit"); ok {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n <= 0 {
			badRequest(c, errors.New("limit must be a positive integer"))
			return
		}
		limit = n
	}
	logs, err := server.repo.ListLogs(c.Request.Context(), limit)
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, webapi.GetLogs(logs))
}
