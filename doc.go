/*
 * Copyright 2024 The asyncflux Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

/*
Package asyncflux provides an asynchronous administrative client for InfluxDB.

# Client

Use NewClient to create a client. It talks to the InfluxDB HTTP API and hands
out Database handles:

	client := asyncflux.NewClient(&asyncflux.Config{
		Endpoint: "http://<influxdb-host>:<influxdb-port:-8086>",
	})
	defer client.Close()

	db := client.Database("telegraf")

# Futures and Callbacks

Every operation returns an Op which does nothing until it is consumed. Either
start it as a Future:

	f := db.GetRetentionPolicies(ctx).Future()
	rps, err := f.Await(ctx)

or hand it a Callback, which is called exactly once after the operation
completes:

	err := db.GetSeries(ctx).Then(func(series []asyncflux.Series, err error) {
		if err != nil {
			log.Printf("show series: %v", err)
			return
		}
		log.Printf("%d series", len(series))
	})

Then only fails when the callback is nil, in which case nothing is started.

# Retention Policies

	rp, err := db.CreateRetentionPolicy(ctx, "one_month", "30d", 1, true).Await(ctx)
	if err != nil {
		return err
	}
	err = db.AlterRetentionPolicy(ctx, rp.Name, asyncflux.AlterOptions{
		Duration: "60d",
	}).Then(func(_ struct{}, err error) { ... })
*/
package asyncflux
