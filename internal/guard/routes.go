package guard

// The application's route table. Mirrors what each screen of the tracker
// requires: everything but login needs a session, reports need admin.
var (
	RouteLogin      = Route{Name: "login", GuestOnly: true}
	RouteDashboard  = Route{Name: "dashboard", RequiresAuth: true}
	RouteProperties = Route{Name: "properties", RequiresAuth: true}
	RouteWorkers    = Route{Name: "workers", RequiresAuth: true}
	RouteRecords    = Route{Name: "records", RequiresAuth: true}
	RouteReports    = Route{Name: "reports", RequiresAuth: true, RequiresAdmin: true}
)
