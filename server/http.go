package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/IMQS/gzipresponse"
	"github.com/julienschmidt/httprouter"
	"github.com/valyala/fastjson"

	"github.com/IMQS/qalgebra/estimate"
	"github.com/IMQS/qalgebra/query"
)

const defaultHttpPort = "2008"

type jsonMatchResult struct {
	ShardTried string
	Describe   string
	DocIDs     []uint32
}

type jsonEstimateResult struct {
	ShardTried string
	Describe   string
	Min, Est, Max int
}

type jsonPingResult struct {
	Timestamp int64
}

func (e *Engine) RunHttp() error {
	config := e.GetConfig()
	port := defaultHttpPort
	if config.HTTP.Port != "" {
		port = config.HTTP.Port
	}
	addr := fmt.Sprintf("%v:%v", config.HTTP.Bind, port)

	makeRoute := func(f func(*Engine, http.ResponseWriter, *http.Request, httprouter.Params)) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			f(e, w, r, ps)
		}
	}

	router := httprouter.New()
	router.POST("/describe", makeRoute(httpDescribe))
	router.POST("/match/:shard", makeRoute(httpMatch))
	router.POST("/estimate/:shard", makeRoute(httpEstimate))
	router.GET("/ping", makeRoute(httpPing))

	e.ErrorLog.Infof("qalgebra is listening on %v", addr)
	err := http.ListenAndServe(addr, router)
	e.ErrorLog.Infof("ListenAndServe: %v", err)
	return err
}

func httpSendError(w http.ResponseWriter, err error) {
	w.WriteHeader(http.StatusBadRequest)
	fmt.Fprintf(w, "%v", err)
}

// DecodeQueryJSON parses the wire JSON query-tree format accepted by
// the /describe, /match/:shard and /estimate/:shard endpoints. Exported
// so cmd/imqs-qalgebra's describe/match/estimate commands can accept
// the same format from the command line.
func DecodeQueryJSON(body []byte) (query.Query, error) {
	return decodeQuery(body)
}

// decodeQuery reads a JSON query-tree body via fastjson rather than
// encoding/json, since the wire format here is a small, shape-fixed
// tree evaluated on every request - fastjson's zero-allocation parse
// avoids the reflection-driven Unmarshal path for what is, in
// practice, the hottest decode in this service.
func decodeQuery(body []byte) (query.Query, error) {
	var p fastjson.Parser
	v, err := p.ParseBytes(body)
	if err != nil {
		return query.Query{}, err
	}
	return decodeQueryValue(v)
}

func decodeQueryValue(v *fastjson.Value) (query.Query, error) {
	op := string(v.GetStringBytes("op"))
	switch op {
	case "", "term":
		return query.TermDefault(string(v.GetStringBytes("term"))), nil
	case "all":
		return query.MatchAll(), nil
	case "none":
		return query.MatchNothing(), nil
	case "and", "or", "xor":
		children, err := decodeQueryChildren(v)
		if err != nil {
			return query.Query{}, err
		}
		switch op {
		case "and":
			return query.AndN(children)
		case "or":
			return query.OrN(children)
		default:
			return query.XorN(children)
		}
	case "and_not", "and_maybe", "filter":
		children, err := decodeQueryChildren(v)
		if err != nil {
			return query.Query{}, err
		}
		if len(children) != 2 {
			return query.Query{}, fmt.Errorf("%v requires exactly 2 operands, got %v", op, len(children))
		}
		switch op {
		case "and_not":
			return query.AndNot(children[0], children[1]), nil
		case "and_maybe":
			return query.AndMaybe(children[0], children[1]), nil
		default:
			return query.Filter(children[0], children[1]), nil
		}
	case "scale":
		children, err := decodeQueryChildren(v)
		if err != nil {
			return query.Query{}, err
		}
		if len(children) != 1 {
			return query.Query{}, fmt.Errorf("scale requires exactly 1 operand, got %v", len(children))
		}
		return query.Scale(v.GetFloat64("factor"), children[0])
	case "phrase", "near":
		children, err := decodeQueryChildren(v)
		if err != nil {
			return query.Query{}, err
		}
		window := v.GetInt("window")
		if op == "phrase" {
			return query.PhraseN(children, window)
		}
		return query.NearN(children, window)
	}
	return query.Query{}, fmt.Errorf("unknown query op %q", op)
}

func decodeQueryChildren(v *fastjson.Value) ([]query.Query, error) {
	arr := v.GetArray("children")
	out := make([]query.Query, len(arr))
	for i, c := range arr {
		child, err := decodeQueryValue(c)
		if err != nil {
			return nil, err
		}
		out[i] = child
	}
	return out, nil
}

func httpDescribe(e *Engine, w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	body := readBody(r)
	q, err := decodeQuery(body)
	if err != nil {
		httpSendError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprint(w, e.Describe(q))
}

func httpMatch(e *Engine, w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	shard := ps.ByName("shard")
	body := readBody(r)
	q, err := decodeQuery(body)
	if err != nil {
		httpSendError(w, err)
		return
	}
	docids, err := e.Match(shard, q)
	if err != nil {
		e.ErrorLog.Warnf("Match failed on shard %v: %v", shard, err)
		httpSendError(w, err)
		return
	}
	e.AccessLog.Infof("Match(%v): %v results", shard, len(docids))
	res := jsonMatchResult{ShardTried: shard, Describe: query.Describe(q), DocIDs: docids}
	raw, _ := json.Marshal(res)
	w.Header().Set("Content-Type", "application/json")
	gzipresponse.Write(w, r, raw)
}

func httpEstimate(e *Engine, w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	shard := ps.ByName("shard")
	body := readBody(r)
	q, err := decodeQuery(body)
	if err != nil {
		httpSendError(w, err)
		return
	}
	var b estimate.Bounds
	b, err = e.Estimate(shard, q)
	if err != nil {
		e.ErrorLog.Warnf("Estimate failed on shard %v: %v", shard, err)
		httpSendError(w, err)
		return
	}
	e.AccessLog.Infof("Estimate(%v): [%v, %v, %v]", shard, b.Min, b.Est, b.Max)
	res := jsonEstimateResult{ShardTried: shard, Describe: query.Describe(q), Min: b.Min, Est: b.Est, Max: b.Max}
	raw, _ := json.Marshal(res)
	w.Header().Set("Content-Type", "application/json")
	gzipresponse.Write(w, r, raw)
}

func httpPing(e *Engine, w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "max-age=0, no-cache")
	res := jsonPingResult{Timestamp: time.Now().Unix()}
	response, _ := json.Marshal(&res)
	w.Write(response)
}

func readBody(r *http.Request) []byte {
	body, _ := io.ReadAll(r.Body)
	return body
}
