/*
Package tree implements CART decision trees with minimal cost-complexity
(weakest link) pruning.

Training grows a full binary tree by exhaustive threshold search, then
prunes it one weakest link at a time down to the root. Along that path the
tree minimizing the regularized error

	R(T) + ccp_alpha · |leaves(T)|

is kept, where R(T) is the sum of the leaf error rates and a node's error
rate is n_node/n_train × impurity(node).

Two layers are exposed. Fit, CostComplexityPruningPath and Model work on a
Dataset of named numeric columns:

	data, err := tree.FromRecords(header, rows, "label", false)
	m, err := tree.Fit(data, tree.DefaultConfig(false))
	preds, err := m.PredictNamed([]map[string]float64{{"x": 2.5}})

DecisionTreeClassifier and DecisionTreeRegressor wrap the same algorithm
behind the gonum matrix API used by the rest of the module:

	clf := tree.NewDecisionTreeClassifier(tree.WithMaxDepth(5), tree.WithCCPAlpha(0.01))
	if err := clf.Fit(X, y); err != nil {
		return err
	}
	proba, err := clf.PredictProba(X)

Results are deterministic. Split candidates are enumerated by feature column
order and ascending threshold, weakest-link candidates in pre-order (node,
left, right), and in both searches the last of several equal candidates
wins.
*/
package tree
