package httpservice

import "net/http"

import "github.com/sirgallo/syncpay/pkg/logger"
import "github.com/sirgallo/syncpay/pkg/utils"


//=========================================== HTTP Service


const NAME = "HTTP Service"
var Log = clog.NewCustomLog(NAME)

/*
	create a new service instance with passable options
	--> initialize the mux server and register the payment, transactions,
		status, and health route handlers on it
*/

func NewHTTPService(opts *HTTPServiceOpts) *HTTPService {
	mux := http.NewServeMux()

	httpService := &HTTPService{
		Mux: mux,
		Port: utils.NormalizePort(opts.Port),
		Node: opts.Node,
	}

	httpService.RegisterPaymentRoute()
	httpService.RegisterTransactionsRoute()
	httpService.RegisterStatusRoute()
	httpService.RegisterHealthRoute()

	return httpService
}

/*
	Start HTTP Service:
		start the server to begin listening for client requests
*/

func (httpService *HTTPService) StartHTTPService() {
	Log.Info("http service starting up on port:", httpService.Port)

	srv := &http.Server{
		Addr: httpService.Port,
		Handler: httpService.Mux,
		ReadTimeout: HTTPTimeout,
		WriteTimeout: HTTPTimeout,
	}

	srvErr := srv.ListenAndServe()
	if srvErr != nil { Log.Fatal("unable to start http service:", srvErr.Error()) }
}
